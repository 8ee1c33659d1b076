package factory

import (
	"fmt"

	"github.com/baitline/scam-gateway/internal/adapters/bedrock"
	"github.com/baitline/scam-gateway/internal/adapters/gemini"
	"github.com/baitline/scam-gateway/internal/adapters/openai"
	"github.com/baitline/scam-gateway/internal/config"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/utils"
	"go.uber.org/zap"
)

// LLMFactory creates the backend capability clients. The classifier and
// responder roles are configured independently and may use different
// providers.
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates the classification backend client
func (f *LLMFactory) CreateClassifier() (core.ClassifierClient, error) {
	return f.createClient(f.cfg.GetClassifier())
}

// CreateResponder creates the reply-generation backend client
func (f *LLMFactory) CreateResponder() (core.ResponderClient, error) {
	return f.createClient(f.cfg.GetResponder())
}

// createClient builds a provider client for one role. Every provider client
// implements both capability interfaces; the callers pick the one they need.
func (f *LLMFactory) createClient(cfg config.BackendConfig) (interface {
	core.ClassifierClient
	core.ResponderClient
}, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewFactory(cfg, f.logger, f.textProcessor).CreateClient()
	case "gemini":
		return gemini.NewFactory(cfg, f.logger, f.textProcessor).CreateClient()
	case "bedrock":
		return bedrock.NewFactory(cfg, f.logger, f.textProcessor).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
