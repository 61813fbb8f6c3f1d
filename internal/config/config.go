package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/balping/hashslug/hashslug"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Slug     SlugConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" required:"true"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	BaseURL         string        `envconfig:"SERVER_BASE_URL" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port cannot be empty")
	}
	if c.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return errors.New("read, write and idle timeouts must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"` // apply embedded migrations on startup
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.User == "" {
		return errors.New("user cannot be empty")
	}
	if c.Name == "" {
		return errors.New("database name cannot be empty")
	}
	if c.MaxConns <= 0 || c.MinConns <= 0 {
		return errors.New("connection limits must be positive")
	}
	if c.MinConns > c.MaxConns {
		return fmt.Errorf("min connections (%d) cannot be greater than max connections (%d)", c.MinConns, c.MaxConns)
	}

	switch c.SSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid SSL mode: %s (must be one of: disable, require, verify-ca, verify-full)", c.SSLMode)
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment    string `envconfig:"APP_ENV" required:"true"`       // development, staging, production, test
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`      // debug, info, warn, error
	ServiceName    string `envconfig:"SERVICE_NAME" default:"hashslug"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"dev"`
}

// Validate validates the app configuration.
func (c *AppConfig) Validate() error {
	switch c.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Environment)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// SlugConfig holds the slug codec configuration.
type SlugConfig struct {
	// AppSalt is the dedicated slug secret. When empty, AppKey is used.
	AppSalt        string `envconfig:"HASHSLUG_APPSALT"`
	AppKey         string `envconfig:"APP_KEY"`
	Engine         string `envconfig:"HASHSLUG_ENGINE" default:"hashids"`
	CacheSize      int    `envconfig:"HASHSLUG_CACHE_SIZE" default:"0"`
	NamespacesFile string `envconfig:"HASHSLUG_NAMESPACES_FILE"`

	// Namespaces holds per-namespace overrides read from NamespacesFile.
	Namespaces map[string]NamespaceConfig `ignored:"true"`
}

// Secret returns the application secret mixed into every namespace salt.
// It may be empty.
func (c *SlugConfig) Secret() string {
	if c.AppSalt != "" {
		return c.AppSalt
	}
	return c.AppKey
}

// ParsedEngine returns the configured engine.
func (c *SlugConfig) ParsedEngine() (hashslug.Engine, error) {
	return hashslug.ParseEngine(c.Engine)
}

// Validate validates the slug configuration.
func (c *SlugConfig) Validate() error {
	if _, err := c.ParsedEngine(); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative, got %d", c.CacheSize)
	}
	for name, ns := range c.Namespaces {
		if err := ns.Validate(); err != nil {
			return fmt.Errorf("namespace %q: %w", name, err)
		}
	}
	return nil
}

// Namespace builds the namespace identified by key, applying the overrides
// configured under name.
func (c *SlugConfig) Namespace(name, key string) hashslug.Namespace {
	return hashslug.NewNamespace(key, c.Namespaces[name].Options()...)
}

// Load loads configuration from environment variables, plus the slug
// namespaces file when one is configured.
// (.env loading happens in internal/app for development, not here.)
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load Server config: %w", err)
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Server config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load Database config: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Database config: %w", err)
	}

	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, fmt.Errorf("failed to load App config: %w", err)
	}
	if err := cfg.App.Validate(); err != nil {
		return nil, fmt.Errorf("invalid App config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Slug); err != nil {
		return nil, fmt.Errorf("failed to load Slug config: %w", err)
	}
	if cfg.Slug.NamespacesFile != "" {
		namespaces, err := LoadNamespaces(cfg.Slug.NamespacesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load Slug namespaces: %w", err)
		}
		cfg.Slug.Namespaces = namespaces
	}
	if err := cfg.Slug.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Slug config: %w", err)
	}

	return cfg, nil
}
