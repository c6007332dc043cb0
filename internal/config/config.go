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

// LoginErrorMode controls how a login with valid credentials for a different
// restaurant is reported.
type LoginErrorMode string

const (
	// LoginErrorGeneric reports the mismatch as a plain credential error.
	LoginErrorGeneric LoginErrorMode = "generic"
	// LoginErrorSpecific reports the mismatch against the restaurant code field.
	LoginErrorSpecific LoginErrorMode = "specific"
)

const defaultDSN = "file::memory:?cache=shared"

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	JWTSecret      string
	JWTTTL         time.Duration
	CORSOrigins    string
	LoginErrorMode LoginErrorMode
	BcryptCost     int
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	// .env is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] could not read .env: %v", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		LoginErrorMode: ParseLoginErrorMode(getEnv("LOGIN_ERROR_MODE", string(LoginErrorGeneric))),
		BcryptCost:     getInt("BCRYPT_COST", bcrypt.DefaultCost),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Printf("[WARN] BCRYPT_COST=%d out of range, using default", cfg.BcryptCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS not set, allowing the local dashboard only")
	}

	return cfg
}

// ParseLoginErrorMode falls back to the generic mode for unknown values.
func ParseLoginErrorMode(v string) LoginErrorMode {
	switch LoginErrorMode(strings.ToLower(strings.TrimSpace(v))) {
	case LoginErrorSpecific:
		return LoginErrorSpecific
	default:
		return LoginErrorGeneric
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] %s=%q is not a valid duration, using %s", key, v, def)
		return def
	}
	return d
}
