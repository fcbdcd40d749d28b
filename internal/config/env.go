package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Env struct {
	AppAddr         string
	GinMode         string
	DatabaseDSN     string
	JWTSecret       []byte
	AdminPinHash    []byte
	Location        *time.Location
	BusScheduleFile string
	PrintFontPath   string
	NATSURL         string
	FeedCacheTTL    time.Duration
	SessionTTL      time.Duration
	CORSOrigins     []string
}

func LoadEnv() Env {
	// .env is optional
	_ = godotenv.Load()

	env := Env{
		AppAddr:         getenvDefault("APP_ADDR", ":8080"),
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		DatabaseDSN:     getenvDefault("DB_DSN", "root:@tcp(127.0.0.1:3306)/ridesboard?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		BusScheduleFile: strings.TrimSpace(os.Getenv("BUS_SCHEDULE_FILE")),
		PrintFontPath:   strings.TrimSpace(os.Getenv("PRINT_FONT_PATH")),
		NATSURL:         strings.TrimSpace(os.Getenv("NATS_URL")),
		FeedCacheTTL:    time.Duration(getenvInt("FEED_CACHE_TTL_SEC", 30)) * time.Second,
		SessionTTL:      time.Duration(getenvInt("SESSION_TTL_HOURS", 720)) * time.Hour,
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Println("[CONFIG] JWT_SECRET not set, using development secret")
		secret = "ridesboard-dev-secret-change-me"
	}
	env.JWTSecret = []byte(secret)

	env.AdminPinHash = loadAdminPinHash()

	tzName := getenvDefault("TZ_NAME", "Asia/Jerusalem")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("[CONFIG] invalid TZ_NAME %q (%v), falling back to local time", tzName, err)
		loc = time.Local
	}
	env.Location = loc

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

// loadAdminPinHash prefers a precomputed bcrypt hash; a plain ADMIN_PIN is
// hashed once at startup. Nil disables admin login.
func loadAdminPinHash() []byte {
	if h := strings.TrimSpace(os.Getenv("ADMIN_PIN_HASH")); h != "" {
		return []byte(h)
	}
	pin := strings.TrimSpace(os.Getenv("ADMIN_PIN"))
	if pin == "" {
		log.Println("[CONFIG] no ADMIN_PIN configured, admin login disabled")
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[CONFIG] hash ADMIN_PIN: %v", err)
		return nil
	}
	return h
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[CONFIG] invalid %s=%q, using %d", k, v, def)
		return def
	}
	return n
}
