package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string
	TokenTTL  time.Duration

	InactivityTimeout time.Duration
	RefreshInterval   time.Duration

	// DataDir backs the persistence bridge; empty means in-memory only.
	DataDir string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: envOr("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "warehouse_app"),

		JWTSecret: secret,
		TokenTTL:  envDuration("TOKEN_TTL_MINUTES", 24*time.Hour),

		InactivityTimeout: envDuration("SESSION_INACTIVITY_MINUTES", 30*time.Minute),
		RefreshInterval:   envDuration("TOKEN_REFRESH_MINUTES", 15*time.Minute),

		DataDir: strings.TrimSpace(os.Getenv("DATA_DIR")),
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(v)
	if err != nil || minutes <= 0 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
