package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server" envconfig:"SERVER"`
	Database      DatabaseConfig      `yaml:"database" envconfig:"DATABASE"`
	Security      SecurityConfig      `yaml:"security" envconfig:"SECURITY"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig contains the shipment record store connection configuration
type DatabaseConfig struct {
	Host           string        `yaml:"host" envconfig:"HOST" default:"localhost"`
	Port           int           `yaml:"port" envconfig:"PORT" default:"5432"`
	Name           string        `yaml:"name" envconfig:"NAME" default:"wms"`
	User           string        `yaml:"user" envconfig:"USER" default:"wms"`
	Password       string        `yaml:"password" envconfig:"PASSWORD"`
	SSLMode        string        `yaml:"ssl_mode" envconfig:"SSL_MODE" default:"disable"`
	MaxConns       int32         `yaml:"max_conns" envconfig:"MAX_CONNS" default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT" default:"5s"`
}

// DSN returns the pgx connection string for the configured database
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ObservabilityConfig contains tracing and metrics configuration
type ObservabilityConfig struct {
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING" default:"true"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS" default:"true"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (WMS_ prefix) take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("WMS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config into env config. A file value wins only
// when the corresponding environment variable was not explicitly set, since
// envconfig fills defaults for unset variables.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if !envSet("WMS_SERVER_PORT") && fileConfig.Server.Port != 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if !envSet("WMS_SERVER_READ_TIMEOUT") && fileConfig.Server.ReadTimeout != 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if !envSet("WMS_SERVER_WRITE_TIMEOUT") && fileConfig.Server.WriteTimeout != 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if !envSet("WMS_SERVER_IDLE_TIMEOUT") && fileConfig.Server.IdleTimeout != 0 {
		envConfig.Server.IdleTimeout = fileConfig.Server.IdleTimeout
	}
	if !envSet("WMS_SERVER_REQUEST_TIMEOUT") && fileConfig.Server.RequestTimeout != 0 {
		envConfig.Server.RequestTimeout = fileConfig.Server.RequestTimeout
	}
	if !envSet("WMS_SERVER_SHUTDOWN_TIMEOUT") && fileConfig.Server.ShutdownTimeout != 0 {
		envConfig.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}

	if !envSet("WMS_DATABASE_HOST") && fileConfig.Database.Host != "" {
		envConfig.Database.Host = fileConfig.Database.Host
	}
	if !envSet("WMS_DATABASE_PORT") && fileConfig.Database.Port != 0 {
		envConfig.Database.Port = fileConfig.Database.Port
	}
	if !envSet("WMS_DATABASE_NAME") && fileConfig.Database.Name != "" {
		envConfig.Database.Name = fileConfig.Database.Name
	}
	if !envSet("WMS_DATABASE_USER") && fileConfig.Database.User != "" {
		envConfig.Database.User = fileConfig.Database.User
	}
	if !envSet("WMS_DATABASE_PASSWORD") && fileConfig.Database.Password != "" {
		envConfig.Database.Password = fileConfig.Database.Password
	}
	if !envSet("WMS_DATABASE_SSL_MODE") && fileConfig.Database.SSLMode != "" {
		envConfig.Database.SSLMode = fileConfig.Database.SSLMode
	}
	if !envSet("WMS_DATABASE_MAX_CONNS") && fileConfig.Database.MaxConns != 0 {
		envConfig.Database.MaxConns = fileConfig.Database.MaxConns
	}
	if !envSet("WMS_DATABASE_CONNECT_TIMEOUT") && fileConfig.Database.ConnectTimeout != 0 {
		envConfig.Database.ConnectTimeout = fileConfig.Database.ConnectTimeout
	}

	if !envSet("WMS_SECURITY_ALLOWED_ORIGINS") && len(fileConfig.Security.AllowedOrigins) > 0 {
		envConfig.Security.AllowedOrigins = fileConfig.Security.AllowedOrigins
	}

	if !envSet("WMS_LOGGING_LEVEL") && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if !envSet("WMS_LOGGING_OUTPUT") && fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if !envSet("WMS_LOGGING_FILE_PATH") && fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// validate checks configuration for common mistakes
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database max_conns must be at least 1, got %d", c.Database.MaxConns)
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	return nil
}

// getConfigFilePath returns the config file path, honoring WMS_CONFIG_FILE
func getConfigFilePath() string {
	if path := os.Getenv("WMS_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
