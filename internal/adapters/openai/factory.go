package openai

import (
	"fmt"

	"github.com/baitline/scam-gateway/internal/config"
	"github.com/baitline/scam-gateway/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of Client for one backend role
type Factory struct {
	cfg           config.BackendConfig
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Client instances
func NewFactory(cfg config.BackendConfig, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new Client for the configured endpoint
func (f *Factory) CreateClient() (*Client, error) {
	if f.cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	clientConfig := openai.DefaultConfig(f.cfg.APIKey)
	if f.cfg.BaseURL != "" {
		clientConfig.BaseURL = f.cfg.BaseURL
	}
	api := openai.NewClientWithConfig(clientConfig)

	return NewClient(
		api,
		f.cfg.Model,
		f.cfg.MaxTokens,
		f.cfg.Temperature,
		f.cfg.TopP,
		f.cfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
