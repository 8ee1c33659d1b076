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
	v.AddConfigPath("/etc/scam-gateway/")
	v.AddConfigPath("$HOME/.scam-gateway")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SCAM_GATEWAY")
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
	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.backend_timeout", "30s")

	// Auth defaults
	v.SetDefault("auth.api_key", "")

	// Request bound defaults
	v.SetDefault("limits.max_messages", 50)
	v.SetDefault("limits.max_message_length", 1000)
	v.SetDefault("limits.max_conversation_length", 5000)
	v.SetDefault("limits.max_text_length", 2000)

	// Rate limit defaults
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window", "60s")

	// Classifier backend defaults
	v.SetDefault("classifier.provider", "openai")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.base_url", "https://router.huggingface.co/featherless-ai/v1")
	v.SetDefault("classifier.model", "mistralai/Mistral-7B-Instruct-v0.2")
	v.SetDefault("classifier.max_tokens", 512)
	v.SetDefault("classifier.temperature", 0.7)
	v.SetDefault("classifier.top_p", 0.9)
	v.SetDefault("classifier.max_body_size", 4096)
	v.SetDefault("classifier.region", "us-east-1")

	// Responder backend defaults
	v.SetDefault("responder.provider", "openai")
	v.SetDefault("responder.api_key", "")
	v.SetDefault("responder.base_url", "https://router.huggingface.co/novita/v3/openai")
	v.SetDefault("responder.model", "meta-llama/llama-3.2-3b-instruct")
	v.SetDefault("responder.max_tokens", 300)
	v.SetDefault("responder.temperature", 0.7)
	v.SetDefault("responder.top_p", 0.9)
	v.SetDefault("responder.max_body_size", 8192)
	v.SetDefault("responder.region", "us-east-1")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/classification_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/scam_gateway")

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

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
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
