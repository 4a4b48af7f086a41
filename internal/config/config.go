package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	SessionSecret   string
	SessionTTL      time.Duration
	SessionCookie   string
	CookieSecure    bool
	PasswordHashing string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	return &Config{
		Env:             env,
		ServerPort:      getEnv("SERVER_PORT", "3333"),
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "blogapp:blogapp@tcp(localhost:3306)/blogapp?charset=utf8mb4&parseTime=True&loc=Local"),
		ResetDB:         getEnvBool("RESET_DB", false),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SessionCookie:   getEnv("SESSION_COOKIE", "blogapp_session"),
		CookieSecure:    getEnvBool("COOKIE_SECURE", env == "prod"),
		PasswordHashing: getEnv("PASSWORD_HASHING", "bcrypt"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
