package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	APP_URL     string
	CORS_ORIGIN string

	STRIPE_PRICE_DAILY   string
	STRIPE_PRICE_WEEKLY  string
	STRIPE_PRICE_MONTHLY string

	FIREBASE_CREDENTIALS string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:8080")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	STRIPE_PRICE_DAILY = mustEnv("STRIPE_PRICE_DAILY")
	STRIPE_PRICE_WEEKLY = mustEnv("STRIPE_PRICE_WEEKLY")
	STRIPE_PRICE_MONTHLY = mustEnv("STRIPE_PRICE_MONTHLY")

	// Optional: push notifications stay disabled when unset
	FIREBASE_CREDENTIALS = getEnv("FIREBASE_CREDENTIALS", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
