package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the service reads from the environment.
// Secrets and pool sizes are resolved once at startup; nothing below
// this layer touches os.Getenv.
type Config struct {
	Port          string
	DatabaseURL   string
	AccessSecret  string
	RefreshSecret string
	AccessTTL     string
	RefreshTTL    string

	// RedisAddr is optional; when empty the comment event bus runs
	// in-process.
	RedisAddr string

	// AllowedImageHosts is the allow-list for post image URLs.
	AllowedImageHosts []string

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "4000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_SECRET"),
		AccessTTL:     getenv("ACCESS_TTL", "15m"),
		RefreshTTL:    getenv("REFRESH_TTL", "168h"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		DBMaxOpen:     atoi(getenv("DB_MAX_OPEN", "25"), 25),
		DBMaxIdle:     atoi(getenv("DB_MAX_IDLE", "25"), 25),
		DBMaxLifetime: time.Duration(atoi(getenv("DB_MAX_LIFETIME", "300"), 300)) * time.Second,
	}

	hosts := getenv("ALLOWED_IMAGE_HOSTS", "images.unsplash.com,effervescent-tern-586.convex.cloud")
	for _, h := range strings.Split(hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			cfg.AllowedImageHosts = append(cfg.AllowedImageHosts, h)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("config: ACCESS_SECRET and REFRESH_SECRET are required")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
