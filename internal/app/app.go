// Package app holds process-level configuration loaded from the
// environment.
package app

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	SessionLifetime  time.Duration
	RememberLifetime time.Duration
	PictureDir       string
	SecureCookies    bool
}

func LoadConfig() Config {
	return Config{
		Addr:             getenv("ADDR", ":8080"),
		DatabaseURL:      getenv("DATABASE_URL", "postgres://localhost:5432/blog?sslmode=disable"),
		SessionLifetime:  hours("SESSION_LIFETIME_HOURS", 24),
		RememberLifetime: hours("REMEMBER_LIFETIME_HOURS", 24*30),
		PictureDir:       getenv("PICTURE_DIR", "data/profile_pics"),
		SecureCookies:    os.Getenv("SECURE_COOKIES") == "true",
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func hours(k string, def int) time.Duration {
	n, err := strconv.Atoi(getenv(k, strconv.Itoa(def)))
	if err != nil || n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Hour
}

func Must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
