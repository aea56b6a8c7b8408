package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default seed values used when the environment does not override them.
const (
	DefaultSeedUsername = "camdibi"
	DefaultSeedPassword = "mınka"
)

// devSessionSecret signs sessions outside production when SESSION_SECRET is unset.
const devSessionSecret = "fallback-secret-key-for-dev-only"

// ErrMissingSessionSecret is returned by Load in production without SESSION_SECRET.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set in production")

// DefaultSeedMembers is the household member list created on first startup.
var DefaultSeedMembers = []string{"aytun", "kınık", "kandemir"}

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Session
	SessionSecret       string
	SessionTTL          time.Duration
	SessionSecureCookie bool

	// Seed
	SeedUsername string
	SeedPassword string
	SeedMembers  []string

	// Metrics
	MetricsAPIKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "butce"),
		DBPassword: getEnv("DB_PASSWORD", "butce"),
		DBName:     getEnv("DB_NAME", "butce"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "database.db"),

		SessionSecret:       os.Getenv("SESSION_SECRET"),
		SessionSecureCookie: getEnvBool("SESSION_SECURE_COOKIE", false),

		SeedUsername: getEnv("SEED_USERNAME", DefaultSeedUsername),
		SeedPassword: getEnv("SEED_PASSWORD", DefaultSeedPassword),
		SeedMembers:  splitList(getEnv("SEED_MEMBERS", strings.Join(DefaultSeedMembers, ","))),

		MetricsAPIKey: getEnv("METRICS_API_KEY", ""),
	}

	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 24h\n", ttlStr)
		ttl = 24 * time.Hour
	}
	config.SessionTTL = ttl

	if config.SessionSecret == "" {
		if config.Env == "production" {
			return nil, ErrMissingSessionSecret
		}
		log.Println("Warning: SESSION_SECRET not set, using the development secret")
		config.SessionSecret = devSessionSecret
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, v, defaultValue)
		return defaultValue
	}
	return b
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
