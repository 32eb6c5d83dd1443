package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	tokenTTL, err := strconv.Atoi(getEnvOr("AUTH_TOKEN_TTL_HOURS", "72"))
	if err != nil || tokenTTL <= 0 {
		log.Warn("Invalid AUTH_TOKEN_TTL_HOURS, falling back to 72", "value", os.Getenv("AUTH_TOKEN_TTL_HOURS"))
		tokenTTL = 72
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Auth: AuthConfig{
			SigningSecret: getEnv("AUTH_SIGNING_SECRET"),
			TokenTTLHours: tokenTTL,
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Mail: MailConfig{
			ResendAPIKey: getEnvOr("RESEND_API_KEY", ""),
			FromAddress:  getEnvOr("MAIL_FROM_ADDRESS", "Academy <noreply@fieldpoint.app>"),
			AppBaseURL:   getEnvOr("APP_BASE_URL", "http://localhost:"+getEnvOr("PORT", "8080")),
		},
	}
	return cfg
}
