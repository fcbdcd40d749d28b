package api

import (
	"log"
	stdhttp "net/http"

	intconfig "ridesboard/internal/config"
	h "ridesboard/internal/http/handlers"
	"ridesboard/internal/http/middleware"
	"ridesboard/internal/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. m may be nil, which disables /metrics.
func NewRouter(env intconfig.Env, a *h.API, m *metrics.Collector) *gin.Engine {
	r := gin.New()

	var obs middleware.RequestObserver
	if m != nil {
		obs = m
	}
	r.Use(middleware.RequestID(), middleware.Logger(obs), gin.Recovery(), middleware.CORS(env.CORSOrigins), middleware.Session(a.Auth))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/routes", h.Routes)
		api.GET("/destinations", h.Destinations)

		// Identity
		api.POST("/session", a.CreateSession)
		api.GET("/session", middleware.RequireSession(), a.Me)
		api.POST("/admin/login", a.AdminLogin)

		// Rides
		rides := api.Group("/rides")
		rides.GET("", a.ListRides)
		rides.POST("", middleware.RequireSession(), a.CreateRide)
		rides.DELETE("/:id", middleware.RequireSession(), a.DeleteRide)

		// Board
		api.GET("/feed", a.GetFeed)
		api.GET("/feed/print", a.PrintFeed)
		api.GET("/bus-lines", a.BusLines)

		// E-mail requests
		email := api.Group("/email-requests")
		email.GET("", a.ListEmailRequests)
		email.POST("", middleware.RequireAdmin(), a.CreateEmailRequest)
	}

	h.SetRouter(r)
	return r
}
