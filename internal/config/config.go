package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		// DeletionDelay is the number of ticks a quiz lives. 14400 in production.
		DeletionDelay     uint64 `yaml:"deletion_delay"`
		TokensPerQuestion uint64 `yaml:"tokens_per_question"`
		TickInterval      string `yaml:"tick_interval"`
		CacheTTL          string `yaml:"cache_ttl"`
	} `yaml:"quiz"`
	Ledger struct {
		ExistentialDeposit uint64            `yaml:"existential_deposit"`
		Genesis            map[string]uint64 `yaml:"genesis"`
	} `yaml:"ledger"`
	Auth struct {
		Secret   string `yaml:"secret"`
		Issuer   string `yaml:"issuer"`
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"auth"`
	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"amqp"`
}

const (
	DefaultDeletionDelay     = 10
	DefaultTokensPerQuestion = 1
	DefaultExchange          = "quiz.events"
)

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Quiz.DeletionDelay == 0 {
		c.Quiz.DeletionDelay = DefaultDeletionDelay
	}
	if c.Quiz.TokensPerQuestion == 0 {
		c.Quiz.TokensPerQuestion = DefaultTokensPerQuestion
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = DefaultExchange
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
