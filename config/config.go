package config

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sethvargo/go-envconfig"
)

// Config armazena todas as configurações do serviço, lidas do ambiente.
type Config struct {
	// Geral
	Port        string `env:"PORT, default=8080"`
	Environment string `env:"ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	SeedData    bool   `env:"SEED_DATA, default=true"`

	// Cache (Redis). Endereço vazio desliga o cache e o rate limiting.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL, default=5m"`

	// Rate limiting
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS, default=100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD, default=1m"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reporta todas as configurações inválidas de uma vez.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Port == "" {
		result = multierror.Append(result, fmt.Errorf("PORT must not be empty"))
	}
	if c.RateLimitMaxRequests <= 0 {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive, got %d", c.RateLimitMaxRequests))
	}
	if c.RateLimitPeriod <= 0 {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_PERIOD must be positive, got %s", c.RateLimitPeriod))
	}
	if c.CacheTTL < 0 {
		result = multierror.Append(result, fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL))
	}

	return result.ErrorOrNil()
}

// Addr é o endereço em que o servidor HTTP escuta.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// CacheEnabled indica se um endereço do Redis foi configurado.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
