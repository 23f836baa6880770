package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the service needs at startup. Values come from
// the environment; a .env file is loaded first when present.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr selects the shared redis spatial index when set; when
	// empty the service falls back to the in-process R-tree index.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LocationRetention bounds how long location samples are kept.
	LocationRetention time.Duration
}

// LoadConfig reads configuration from the environment via viper. A .env
// file in the working directory is merged in first, matching how the
// service runs in development.
func LoadConfig() (Config, error) {
	// Missing .env is fine in production; real env vars win either way.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "dispatch")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCATION_RETENTION", "24h")

	retention, err := time.ParseDuration(v.GetString("LOCATION_RETENTION"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOCATION_RETENTION: %w", err)
	}
	if retention <= 0 {
		return Config{}, fmt.Errorf("LOCATION_RETENTION must be positive, got %s", retention)
	}

	return Config{
		HTTPPort:          v.GetString("HTTP_PORT"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSslMode:         v.GetString("DB_SSLMODE"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		LocationRetention: retention,
	}, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
