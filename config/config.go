package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	GatewayUrl       string        `envconfig:"CHRONIC_GATEWAY_URL" default:"https://chronicbackend.onrender.com" required:"true"`
	GatewayTimeout   time.Duration `envconfig:"CHRONIC_GATEWAY_TIMEOUT" default:"30s"`
	DefaultKeywords  []string      `envconfig:"CHRONIC_DEFAULT_KEYWORDS" default:"chronic illness"`
	ArticleCacheSize int           `envconfig:"CHRONIC_ARTICLE_CACHE_SIZE" default:"128"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewConfig() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
