package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken      string
	ApplicationID string
	PublicKey     string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.ApplicationID != "" &&
		c.PublicKey != ""
}

type AlertConfig struct {
	WebhookURL string
	LogsURL    string
}

type BotListConfig struct {
	Token   string
	APIBase string
}

// IsConfigured returns true if bot-list stats posting is enabled
func (c BotListConfig) IsConfigured() bool {
	return c.Token != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	MetricsSecret      string

	DiscordConfig DiscordConfig
	AlertConfig   AlertConfig
	BotListConfig BotListConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	metricsSecret, err := getEnvRequired("METRICS_SECRET")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		MetricsSecret:      metricsSecret,

		DiscordConfig: DiscordConfig{
			BotToken:      os.Getenv("DISCORD_BOT_TOKEN"),
			ApplicationID: os.Getenv("DISCORD_APP_ID"),
			PublicKey:     os.Getenv("DISCORD_PUBLIC_KEY"),
		},

		// Error alerting (optional)
		AlertConfig: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
			LogsURL:    getEnvWithDefault("SERVER_LOGS_URL", ""),
		},

		// Bot-list stats posting (optional)
		BotListConfig: BotListConfig{
			Token:   os.Getenv("BOTLIST_TOKEN"),
			APIBase: getEnvWithDefault("BOTLIST_API_BASE", "https://top.gg/api"),
		},
	}

	if !config.DiscordConfig.IsConfigured() {
		return nil, fmt.Errorf(
			"discord integration is not fully configured (DISCORD_BOT_TOKEN, DISCORD_APP_ID, DISCORD_PUBLIC_KEY)")
	}
	log.Printf("✅ Discord integration configured")

	if config.AlertConfig.WebhookURL == "" {
		log.Printf("⚠️ Alert webhook not configured - error alerting will be disabled")
	}

	if config.BotListConfig.IsConfigured() {
		log.Printf("✅ Bot-list stats posting configured")
	} else {
		log.Printf("⚠️ Bot-list token not configured - stats posting will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
