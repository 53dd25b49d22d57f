package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	CatalogRef    CatalogRefConfig    `mapstructure:"catalog_ref"`
	Messaging     MessagingConfig     `mapstructure:"messaging"`
	Secrets       SecretsConfig       `mapstructure:"secrets"`
	Checks        ChecksConfig        `mapstructure:"checks"`
	Lookup        LookupConfig        `mapstructure:"lookup"`
	Ops           OpsConfig           `mapstructure:"ops"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	InstanceID    string              `mapstructure:"instance_id"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// CatalogConfig holds POS catalog API configuration
type CatalogConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     uint          `mapstructure:"max_retries"`
}

// CatalogRefConfig holds catalog-reference API configuration
type CatalogRefConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// MessagingConfig holds group-messaging API configuration
type MessagingConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	BotID          string        `mapstructure:"bot_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	BreakerThreshold uint32        `mapstructure:"breaker_threshold"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
}

// SecretsConfig holds secret store configuration. When StaticToken is set the
// secret store is bypassed entirely, which keeps local runs off AWS.
type SecretsConfig struct {
	SecretID    string `mapstructure:"secret_id"`
	Region      string `mapstructure:"region"`
	StaticToken string `mapstructure:"static_token"`
}

// ChecksConfig holds transaction check configuration
type ChecksConfig struct {
	HighDiscountThresholdPct float64 `mapstructure:"high_discount_threshold_pct"`
}

// LookupConfig holds the CSV lookup table configuration
type LookupConfig struct {
	Path string `mapstructure:"path"`
}

// OpsConfig holds the ops endpoint configuration
type OpsConfig struct {
	Token string `mapstructure:"token"`
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("TICKETCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ticketcheck")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields have valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}
	if c.Catalog.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("catalog.request_timeout must be positive"))
	}
	if c.Messaging.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("messaging.request_timeout must be positive"))
	}
	if c.Checks.HighDiscountThresholdPct < 0 {
		errs = append(errs, fmt.Errorf("checks.high_discount_threshold_pct must not be negative"))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// Catalog API defaults
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.request_timeout", "10s")
	v.SetDefault("catalog.max_retries", 3)

	// Catalog-reference API defaults
	v.SetDefault("catalog_ref.base_url", "")
	v.SetDefault("catalog_ref.request_timeout", "10s")

	// Messaging defaults
	v.SetDefault("messaging.base_url", "https://api.groupme.com/v3")
	v.SetDefault("messaging.bot_id", "")
	v.SetDefault("messaging.request_timeout", "5s")
	v.SetDefault("messaging.breaker_threshold", 5)
	v.SetDefault("messaging.breaker_timeout", "30s")

	// Secrets defaults
	v.SetDefault("secrets.secret_id", "")
	v.SetDefault("secrets.region", "us-east-1")
	v.SetDefault("secrets.static_token", "")

	// Check defaults
	v.SetDefault("checks.high_discount_threshold_pct", 5.0)

	// Lookup table defaults
	v.SetDefault("lookup.path", "")

	// Ops defaults
	v.SetDefault("ops.token", "")

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)

	// Instance ID
	v.SetDefault("instance_id", "ticketcheck-1")
}
