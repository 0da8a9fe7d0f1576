package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/helpers"
	"github.com/evandrht/festipass/internal/models"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBMaxConn   int
	RedisAddr   string
	ServiceName string
	Version     string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func LoadConfig() (*Config, error) {
	maxConn, err := helpers.StringToInt(getEnv("DB_MAX_CONNECTION", "10"))
	if err != nil || maxConn < 1 {
		maxConn = 10
	}

	return &Config{
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "postgres"),
		DBMaxConn:   maxConn,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		ServiceName: getEnv("SERVICE_NAME", "festipass"),
		Version:     getEnv("VERSION", "0.0.1"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxConn)
	sqlDB.SetMaxIdleConns(cfg.DBMaxConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketCategory{},
		&models.Ticket{},
		&models.AccessToken{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// InitRedis returns nil when redis is not configured or unreachable; callers
// treat a nil client as "rate limiting disabled".
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, rate limiting disabled: %v", cfg.RedisAddr, err)
		return nil
	}

	return client
}
