package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/salesboard/internal/database"
)

// DriverMemory keeps records in process memory only.
const DriverMemory = "memory"

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Salesboard"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Driver     string `envconfig:"DB_DRIVER" default:"postgres"`
		Host       string `envconfig:"DB_HOST" default:"localhost"`
		Port       int    `envconfig:"DB_PORT" default:"5432"`
		User       string `envconfig:"DB_USER" default:"postgres"`
		Password   string `envconfig:"DB_PASSWORD" default:""`
		Name       string `envconfig:"DB_NAME" default:"salesboard"`
		SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/salesboard.db"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	}

	Seed struct {
		SourceURL string        `envconfig:"SEED_SOURCE_URL" default:"https://s3.amazonaws.com/roxiler.com/product_transaction.json"`
		Timeout   time.Duration `envconfig:"SEED_TIMEOUT" default:"30s"`
	}

	AMQP struct {
		URL        string `envconfig:"AMQP_URL"`
		Exchange   string `envconfig:"AMQP_EXCHANGE" default:"salesboard"`
		RoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"seed.completed"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}

	return u.String()
}

func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case database.DriverPostgres, database.DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver))
	}

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.App.Port))
	}

	if c.DB.Driver == database.DriverPostgres && (c.DB.Port < 1 || c.DB.Port > 65535) {
		errs = append(errs, fmt.Errorf("invalid DB_PORT %d", c.DB.Port))
	}

	if c.DB.Driver == database.DriverSQLite && c.DB.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
	}

	if u, err := url.Parse(c.Seed.SourceURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid SEED_SOURCE_URL %q", c.Seed.SourceURL))
	}

	if c.Seed.Timeout <= 0 {
		errs = append(errs, errors.New("SEED_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
