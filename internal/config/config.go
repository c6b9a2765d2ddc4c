package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	JWTSecret     string
	CORSOrigins   string
	SeedDemoData  bool
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=fakeshop port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		SeedDemoData:  getEnv("SEED_DEMO_DATA", "false") == "true",
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@fakeshop.test"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=fakeshop port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN for production")
	}
	if cfg.SeedDemoData && cfg.AdminPassword == "" {
		log.Fatal("[FATAL] SEED_DEMO_DATA=true requires ADMIN_PASSWORD")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
