package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable for local development.
const DefaultJWTSecret = "default-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // sqlite, mysql, postgres
	DBHost            string
	DBPort            string
	DBDatabase        string // file path for sqlite, database name otherwise
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Auth configuration
	JWTSecret   string
	TokenTTLSec int

	// AI provider selection; absence of credentials degrades to mock/placeholder
	TextProvider  string // anthropic, openai, mock
	ImageProvider string // openai, fal, stability, replicate, none

	AnthropicAPIKey   string
	OpenAIAPIKey      string
	FalAPIKey         string
	StabilityAPIKey   string
	ReplicateAPIToken string

	// Local image persistence
	AssetDir string
}

// Load loads configuration from the environment, honoring a local .env file
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be fully provisioned already
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8787"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", "petsynth.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),

		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTLSec: getEnvAsInt("TOKEN_TTL_SEC", 86400),

		TextProvider:  getEnv("AI_TEXT_PROVIDER", "mock"),
		ImageProvider: getEnv("IMAGE_PROVIDER", "none"),

		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		FalAPIKey:         getEnv("FAL_API_KEY", ""),
		StabilityAPIKey:   getEnv("STABILITY_API_KEY", ""),
		ReplicateAPIToken: getEnv("REPLICATE_API_TOKEN", ""),

		AssetDir: getEnv("ASSET_DIR", "web/public/images/pets"),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("JWT_SECRET not set, using the development default")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
