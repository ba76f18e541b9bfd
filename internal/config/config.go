package config

import (
	"os"
	"strings"

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
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvDefault("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		PublicBaseURL: getEnvDefault("PUBLIC_BASE_URL", "http://localhost:3000"),
		CORSOrigins:   splitList(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET"),
		},
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		PubSub: PubSubConfig{
			ProjectID: os.Getenv("GCP_PROJECT"),
			Topic:     getEnvDefault("PUBSUB_TOPIC", "roster-events"),
			PushToken: os.Getenv("PUBSUB_PUSH_TOKEN"),
		},
	}
	if cfg.PubSubEnabled() && cfg.PubSub.PushToken == "" {
		log.Fatalf("Error: PUBSUB_PUSH_TOKEN is required when GCP_PROJECT is set.")
	}
	if !cfg.SlackEnabled() {
		log.Warn("Slack is not configured, announcements will only be logged")
	}
	return cfg
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
