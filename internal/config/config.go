package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Graph  GraphConfig
	Auth   AuthConfig
	Cache  CacheConfig
	Order  OrderConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GraphConfig struct {
	URI              string
	User             string
	Password         string
	Database         string
	OperationTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

type CacheConfig struct {
	RedisAddr   string
	FoodListTTL time.Duration
}

type OrderConfig struct {
	MaxRetryAttempts int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 5000)
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	viper.SetDefault("NEO4J_URI", "bolt://localhost:7687")
	viper.SetDefault("NEO4J_USER", "neo4j")
	viper.SetDefault("NEO4J_PASSWORD", "secret")
	viper.SetDefault("NEO4J_DATABASE", "neo4j")
	viper.SetDefault("GRAPH_OPERATION_TIMEOUT", "5s")
	viper.SetDefault("JWT_SECRET", "jwtsecret123")
	viper.SetDefault("JWT_EXPIRY", "1h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("FOOD_LIST_CACHE_TTL", "30s")
	viper.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	viper.SetDefault("LOG_LEVEL", "info")

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	idleTimeout, err := time.ParseDuration(viper.GetString("SERVER_IDLE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	operationTimeout, err := time.ParseDuration(viper.GetString("GRAPH_OPERATION_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	tokenExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		return nil, err
	}

	foodListTTL, err := time.ParseDuration(viper.GetString("FOOD_LIST_CACHE_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Graph: GraphConfig{
			URI:              viper.GetString("NEO4J_URI"),
			User:             viper.GetString("NEO4J_USER"),
			Password:         viper.GetString("NEO4J_PASSWORD"),
			Database:         viper.GetString("NEO4J_DATABASE"),
			OperationTimeout: operationTimeout,
		},
		Auth: AuthConfig{
			JWTSecret:   viper.GetString("JWT_SECRET"),
			TokenExpiry: tokenExpiry,
		},
		Cache: CacheConfig{
			RedisAddr:   viper.GetString("REDIS_ADDR"),
			FoodListTTL: foodListTTL,
		},
		Order: OrderConfig{
			MaxRetryAttempts: viper.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
