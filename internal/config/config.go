package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/threat-analyzer/")
	v.AddConfigPath("$HOME/.threat-analyzer")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("THREAT_ANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app.name", "CyberShield Threat Analyzer")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.demo_mode", false)

	// Analyzer defaults
	v.SetDefault("analyzer.model_version", "1.0.0")
	v.SetDefault("analyzer.max_content_length", 50000)

	// Server defaults
	v.SetDefault("server.mode", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8001")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.rate_limit_burst", 20)

	// SMTP gateway defaults
	v.SetDefault("smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("smtp.upstream_address", "127.0.0.1")
	v.SetDefault("smtp.upstream_port", 10026)
	v.SetDefault("smtp.block_critical", false)
	v.SetDefault("smtp.severity_header", "X-Threat-Severity")
	v.SetDefault("smtp.score_header", "X-Threat-Score")
	v.SetDefault("smtp.type_header", "X-Threat-Type")
	v.SetDefault("smtp.trusted_domains", []string{})

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/threat_analyzer.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/threat_analyzer")
	v.SetDefault("storage.retention", "720h")
	v.SetDefault("storage.cleanup_frequency", "1h")

	// Demo defaults
	v.SetDefault("demo.seed", 1)
	v.SetDefault("demo.records", 50)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
