package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// Bootstrap admin account, created once at startup if missing.
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Base64-encoded HMAC key for token signing.
	JWTSecret string

	AllowedOrigins []string

	// OTLP gRPC endpoint; tracing is disabled when empty.
	OTLPEndpoint string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnvInt("PORT", 8080),
		DBURL:          buildDBURL(),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminName:      getEnv("ADMIN_NAME", "Administrador"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "")),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", ""),
	}
}

// SigningKey decodes the configured base64 JWT secret into raw key bytes.
func (c Config) SigningKey() ([]byte, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	key, err := base64.StdEncoding.DecodeString(c.JWTSecret)

	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET is not valid base64: %w", err)
	}

	return key, nil
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "estoque")
	pass := getEnv("DB_PASSWORD", "estoque")
	name := getEnv("DB_NAME", "estoque")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}

	return fallback
}
