package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Delivery DeliveryConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// StoreConfig selects the durable key-value backend.
type StoreConfig struct {
	Backend string // memory, redis or postgres
	Prefix  string // redis key prefix
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry int // in minutes
}

// DeliveryConfig parameterizes the delivery countdown simulation.
type DeliveryConfig struct {
	Ticks        int // countdown length in ticks
	TickInterval int // tick interval in seconds
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("STORE_PREFIX", "listmarket")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_ACCESS_EXPIRY", 60)
	viper.SetDefault("DELIVERY_TICKS", 60)
	viper.SetDefault("DELIVERY_TICK_INTERVAL", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Backend: viper.GetString("STORE_BACKEND"),
			Prefix:  viper.GetString("STORE_PREFIX"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetInt("JWT_ACCESS_EXPIRY"),
		},
		Delivery: DeliveryConfig{
			Ticks:        viper.GetInt("DELIVERY_TICKS"),
			TickInterval: viper.GetInt("DELIVERY_TICK_INTERVAL"),
		},
	}
}
