package database

import (
	"fmt"
	"log"
	"os"

	"movie-explorer-api/internal/domain/billing"
	"movie-explorer-api/internal/domain/movies"
	"movie-explorer-api/internal/domain/subscriptions"
	"movie-explorer-api/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&subscriptions.Subscription{},
		&movies.Movie{},
		&billing.Payment{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
