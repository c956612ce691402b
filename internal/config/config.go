package config

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/models"
)

type Config struct {
	DB_HOST            string
	DB_PORT            string
	DB_USER            string
	DB_PASSWORD        string
	DB_NAME            string
	DB_PATH            string
	PORT               string
	SESSION_SECRET     string
	TELEGRAM_BOT_TOKEN string
	UPLOAD_DIR         string
	TEMPLATES_DIR      string
	LOG_LEVEL          string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:            os.Getenv("DB_HOST"),
		DB_PORT:            getEnv("DB_PORT", "5432"),
		DB_USER:            os.Getenv("DB_USER"),
		DB_PASSWORD:        os.Getenv("DB_PASSWORD"),
		DB_NAME:            os.Getenv("DB_NAME"),
		DB_PATH:            getEnv("DB_PATH", "optika.db"),
		PORT:               getEnv("PORT", "8080"),
		SESSION_SECRET:     os.Getenv("SESSION_SECRET"),
		TELEGRAM_BOT_TOKEN: os.Getenv("TELEGRAM_BOT_TOKEN"),
		UPLOAD_DIR:         getEnv("UPLOAD_DIR", "static/uploads"),
		TEMPLATES_DIR:      getEnv("TEMPLATES_DIR", "templates"),
		LOG_LEVEL:          getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

// InitDB opens postgres when DB_HOST is set and falls back to a local
// sqlite file otherwise, then migrates the schema.
func InitDB() (*gorm.DB, error) {
	configuration, _ := LoadConfig()

	var (
		db  *gorm.DB
		err error
	)
	if configuration.DB_HOST != "" {
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			configuration.DB_USER,
			configuration.DB_PASSWORD,
			configuration.DB_HOST,
			configuration.DB_PORT,
			configuration.DB_NAME,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(configuration.DB_PATH), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
