package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	MaxWorkers   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string
	LogLevel     string

	// Auth configuration
	JWTSecret                string
	JWTAccessExpiration      time.Duration
	JWTRefreshExpiration     time.Duration
	RequireEmailConfirmation bool

	// Database configuration
	PostgresDBURL string

	// Blob storage configuration (Supabase storage, S3 protocol)
	SupabaseS3Endpoint      string
	SupabaseAccessKeyID     string
	SupabaseAccessKeySecret string
	SupabaseBucket          string
	SupabaseRegion          string

	// Bill rendering configuration
	LogoPath        string
	SignaturePath   string
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),

		// Auth configuration
		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTAccessExpiration:      time.Duration(getEnvInt("JWT_ACCESS_EXPIRATION", 3600)) * time.Second,
		JWTRefreshExpiration:     time.Duration(getEnvInt("JWT_REFRESH_EXPIRATION", 604800)) * time.Second,
		RequireEmailConfirmation: getEnvBool("REQUIRE_EMAIL_CONFIRMATION", false),

		// Database configuration
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),

		// Blob storage configuration
		SupabaseS3Endpoint:      os.Getenv("SUPABASE_S3_ENDPOINT"),
		SupabaseAccessKeyID:     os.Getenv("SUPABASE_ACCESS_KEY_ID"),
		SupabaseAccessKeySecret: os.Getenv("SUPABASE_ACCESS_KEY_SECRET"),
		SupabaseBucket:          getEnvString("SUPABASE_BUCKET", "bills"),
		SupabaseRegion:          getEnvString("SUPABASE_REGION", "ap-south-1"),

		// Bill rendering configuration
		LogoPath:        getEnvString("LOGO_PATH", "assets/apple-logo.png"),
		SignaturePath:   getEnvString("SIGNATURE_PATH", "assets/signature.png"),
		BusinessName:    getEnvString("BUSINESS_NAME", "Sai Fruit Suppliers"),
		BusinessAddress: getEnvString("BUSINESS_ADDRESS", "Dasara Chowk, Gadhinglaj"),
		BusinessPhone:   getEnvString("BUSINESS_PHONE", "9860121156 / 9226959588"),
	}

	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.JWTSecret == "" {
		log.Println("Warning: No JWT secret provided. Token signing will be insecure.")
	}

	if config.PostgresDBURL == "" {
		log.Println("Warning: No Postgres URL provided. User authentication will fail.")
	}

	if config.SupabaseS3Endpoint == "" {
		log.Println("Warning: No Supabase S3 endpoint provided. Bill uploads will fail.")
	}

	if config.SupabaseAccessKeyID == "" || config.SupabaseAccessKeySecret == "" {
		log.Println("Warning: No Supabase access keys provided. Bill uploads will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
