package config

import (
	"fmt"
	"time"

	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CartTTL    time.Duration `env:"CART_TTL" envDefault:"720h"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`

	CatalogBaseURL        string `env:"CATALOG_BASE_URL,required"`
	CatalogConsumerKey    string `env:"CATALOG_CONSUMER_KEY,required"`
	CatalogConsumerSecret string `env:"CATALOG_CONSUMER_SECRET,required"`

	RegistryBaseURL    string `env:"REGISTRY_BASE_URL" envDefault:"https://data.gov.il"`
	RegistryResourceID string `env:"REGISTRY_RESOURCE_ID" envDefault:"053cea08-09bc-40ec-8f7a-156f0677aff3"`

	// EmptyCompatPolicy decides whether a product with no fitment data
	// matches every vehicle ("all") or no vehicle ("none").
	EmptyCompatPolicy string `env:"EMPTY_COMPAT_POLICY" envDefault:"none"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if c.EmptyCompatPolicy != "none" && c.EmptyCompatPolicy != "all" {
		return fmt.Errorf("invalid EMPTY_COMPAT_POLICY: %q (want none or all)", c.EmptyCompatPolicy)
	}
	return nil
}

// EmptyPolicy returns the parsed matcher policy. validate() has already
// rejected unknown values.
func (c *Config) EmptyPolicy() compat.EmptyPolicy {
	return compat.ParseEmptyPolicy(c.EmptyCompatPolicy)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
