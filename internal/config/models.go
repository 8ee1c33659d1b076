package config

// BackendConfig represents the configuration for one generation backend role.
// Provider selects the adapter; the remaining fields are interpreted by the
// adapter that needs them (BaseURL only by openai, Region only by bedrock).
type BackendConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
	Region      string
}

// LimitsConfig represents the request bound configuration
type LimitsConfig struct {
	MaxMessages           int
	MaxMessageLength      int
	MaxConversationLength int
	MaxTextLength         int
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress  string
	AllowedOrigins []string
}

// getBackend reads one role section into a BackendConfig
func (c *Config) getBackend(section string) BackendConfig {
	return BackendConfig{
		Provider:    c.GetString(section + ".provider"),
		APIKey:      c.GetString(section + ".api_key"),
		BaseURL:     c.GetString(section + ".base_url"),
		Model:       c.GetString(section + ".model"),
		MaxTokens:   c.GetInt(section + ".max_tokens"),
		Temperature: float32(c.GetFloat64(section + ".temperature")),
		TopP:        float32(c.GetFloat64(section + ".top_p")),
		MaxBodySize: c.GetInt(section + ".max_body_size"),
		Region:      c.GetString(section + ".region"),
	}
}

// GetClassifier returns the classification backend configuration
func (c *Config) GetClassifier() BackendConfig {
	return c.getBackend("classifier")
}

// GetResponder returns the reply-generation backend configuration
func (c *Config) GetResponder() BackendConfig {
	return c.getBackend("responder")
}

// GetLimits returns the request bound configuration
func (c *Config) GetLimits() LimitsConfig {
	return LimitsConfig{
		MaxMessages:           c.GetInt("limits.max_messages"),
		MaxMessageLength:      c.GetInt("limits.max_message_length"),
		MaxConversationLength: c.GetInt("limits.max_conversation_length"),
		MaxTextLength:         c.GetInt("limits.max_text_length"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:  c.GetString("server.listen_address"),
		AllowedOrigins: c.GetStringSlice("server.allowed_origins"),
	}
}
