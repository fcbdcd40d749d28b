package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "ridesboard/internal/config"
	intdb "ridesboard/internal/db"
	"ridesboard/internal/events"
	router "ridesboard/internal/http"
	h "ridesboard/internal/http/handlers"
	"ridesboard/internal/metrics"
	"ridesboard/internal/repositories"
	"ridesboard/internal/schedule"
	"ridesboard/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer intconfig.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := intdb.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("failed to prepare schema: %v", err)
	}
	cancel()

	lines := schedule.Defaults()
	if env.BusScheduleFile != "" {
		lines, err = schedule.Load(env.BusScheduleFile)
		if err != nil {
			log.Fatalf("failed to load bus schedule: %v", err)
		}
	}
	log.Printf("[SCHEDULE] %d bus lines loaded", len(lines))

	m := metrics.NewCollector(len(lines))

	var rideEvents services.RideEvents
	if env.NATSURL != "" {
		pub, err := events.NewNATSPublisher(env.NATSURL, m)
		if err != nil {
			log.Printf("[EVENTS] nats unavailable, continuing without events: %v", err)
		} else {
			defer pub.Close()
			rideEvents = pub
		}
	}

	rideRepo := repositories.RideRepository{DB: db}
	feed := services.NewFeedService(rideRepo, lines, env.FeedCacheTTL, m)
	now := func() time.Time { return time.Now().In(env.Location) }

	api := &h.API{
		Rides: services.RideService{
			Store:    rideRepo,
			Events:   rideEvents,
			Metrics:  m,
			Feed:     feed,
			Location: env.Location,
			Now:      now,
		},
		Feed:     feed,
		Auth:     services.AuthService{Secret: env.JWTSecret, AdminPinHash: env.AdminPinHash, TTL: env.SessionTTL},
		Print:    services.PrintService{FontPath: env.PrintFontPath},
		Email:    services.EmailRequestService{Store: repositories.EmailRequestRepository{DB: db}},
		DB:       db,
		Location: env.Location,
		Now:      now,
	}

	r := router.NewRouter(env, api, m)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
