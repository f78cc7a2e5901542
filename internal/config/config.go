// Package config merges the two configuration sources: config.yaml for
// model-provider and logging settings, and environment variables for
// secrets and deployment knobs.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"tripplanner/internal/llm"
	"tripplanner/internal/logger"
)

// Env holds the environment-sourced settings.
type Env struct {
	Port               string   `envconfig:"PORT" default:"8080"`
	RedisURL           string   `envconfig:"REDIS_URL"`
	SessionTTLSeconds  int      `envconfig:"SESSION_TTL_SECONDS" default:"3600"`
	MaxDailyRequests   int      `envconfig:"MAX_DAILY_REQUESTS" default:"50"`
	MaxMonthlyRequests int      `envconfig:"MAX_MONTHLY_REQUESTS" default:"500"`
	USDToAUD           float64  `envconfig:"USD_TO_AUD" default:"1.55"`
	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	RequestsPerMinute  int      `envconfig:"REQUESTS_PER_MINUTE" default:"30"`
	ModelAPIKey        string   `envconfig:"MODEL_API_KEY"`
}

// File is the shape of config.yaml.
type File struct {
	Model  llm.Config    `yaml:"model"`
	Logger logger.Config `yaml:"logger"`
}

// Config is the merged runtime configuration.
type Config struct {
	Env
	File
}

// Load reads config.yaml at path and the process environment. The model
// API key is environment-only so it never lands in a committed file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if env.ModelAPIKey != "" {
		file.Model.APIKey = env.ModelAPIKey
	}

	return &Config{Env: env, File: file}, nil
}
