package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"foodgraph/internal/config"
)

// fileConfig is the YAML schema of CONFIG_FILE. Durations are strings in
// Go duration syntax ("5s", "1h"). Absent fields keep the value the
// environment (or its default) already produced.
type fileConfig struct {
	Server struct {
		Port         int    `yaml:"port"`
		ReadTimeout  string `yaml:"readTimeout"`
		WriteTimeout string `yaml:"writeTimeout"`
		IdleTimeout  string `yaml:"idleTimeout"`
	} `yaml:"server"`
	Graph struct {
		URI              string `yaml:"uri"`
		User             string `yaml:"user"`
		Password         string `yaml:"password"`
		Database         string `yaml:"database"`
		OperationTimeout string `yaml:"operationTimeout"`
	} `yaml:"graph"`
	Auth struct {
		JWTSecret   string `yaml:"jwtSecret"`
		TokenExpiry string `yaml:"tokenExpiry"`
	} `yaml:"auth"`
	Cache struct {
		RedisAddr   string `yaml:"redisAddr"`
		FoodListTTL string `yaml:"foodListTtl"`
	} `yaml:"cache"`
	Order struct {
		MaxRetryAttempts int `yaml:"maxRetryAttempts"`
	} `yaml:"order"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig overlays a YAML config file on top of the environment-based
// config, so a partial file never zeroes out a default. Used when
// CONFIG_FILE is set; otherwise config.Load alone applies.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if file.Server.Port != 0 {
		cfg.Server.Port = file.Server.Port
	}
	if err := overlayDuration(&cfg.Server.ReadTimeout, file.Server.ReadTimeout); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.Server.WriteTimeout, file.Server.WriteTimeout); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.Server.IdleTimeout, file.Server.IdleTimeout); err != nil {
		return nil, err
	}

	overlayString(&cfg.Graph.URI, file.Graph.URI)
	overlayString(&cfg.Graph.User, file.Graph.User)
	overlayString(&cfg.Graph.Password, file.Graph.Password)
	overlayString(&cfg.Graph.Database, file.Graph.Database)
	if err := overlayDuration(&cfg.Graph.OperationTimeout, file.Graph.OperationTimeout); err != nil {
		return nil, err
	}

	overlayString(&cfg.Auth.JWTSecret, file.Auth.JWTSecret)
	if err := overlayDuration(&cfg.Auth.TokenExpiry, file.Auth.TokenExpiry); err != nil {
		return nil, err
	}

	overlayString(&cfg.Cache.RedisAddr, file.Cache.RedisAddr)
	if err := overlayDuration(&cfg.Cache.FoodListTTL, file.Cache.FoodListTTL); err != nil {
		return nil, err
	}

	if file.Order.MaxRetryAttempts != 0 {
		cfg.Order.MaxRetryAttempts = file.Order.MaxRetryAttempts
	}
	overlayString(&cfg.Log.Level, file.Log.Level)

	return cfg, nil
}

func overlayString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func overlayDuration(dst *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parsing config duration %q: %w", value, err)
	}
	*dst = d
	return nil
}
