package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Listen  string  `yaml:"listen"`
	Logger  Logger  `yaml:"logger"`
	Storage Storage `yaml:"storage"`
	Auth    Auth    `yaml:"auth"`
	CORS    CORS    `yaml:"cors"`
	Contest Contest `yaml:"contest"`
	Admin   Admin   `yaml:"admin"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Storage struct {
	Database string `yaml:"database"`
}

type Auth struct {
	JWT JWT `yaml:"jwt"`
}

type JWT struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type Contest struct {
	// DefaultPenaltySeconds is applied to contests created without an
	// explicit penalty duration.
	DefaultPenaltySeconds int `yaml:"default_penalty_seconds"`
}

// Admin describes the bootstrap administrator created on first start when
// the users table is empty.
type Admin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.Auth.JWT.ExpireHours <= 0 {
		cfg.Auth.JWT.ExpireHours = 24
	}
	if cfg.Contest.DefaultPenaltySeconds <= 0 {
		cfg.Contest.DefaultPenaltySeconds = 300
	}
	if cfg.Auth.JWT.Secret == "" {
		return nil, fmt.Errorf("config: auth.jwt.secret must be set")
	}

	return &cfg, nil
}
