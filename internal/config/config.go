package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the relay consumes.
type Config struct {
	Port            string
	BaseURL         string
	StripeSecretKey string
	PrintfulAPIURL  string
	PrintfulAPIKey  string
	CORSAllowOrigin string

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	MigrationsPath string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	AdminEmail string
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Config - no .env file, using process environment")
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:3000"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PrintfulAPIURL:  getEnv("PRINTFUL_API_URL", "https://api.printful.com"),
		PrintfulAPIKey:  os.Getenv("PRINTFUL_API_KEY"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnvInt("DB_PORT", 5432),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "printrelay"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/database/migrations"),

		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Config - invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}
