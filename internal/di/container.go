package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/baitline/scam-gateway/internal/adapters/httpapi"
	"github.com/baitline/scam-gateway/internal/auth"
	"github.com/baitline/scam-gateway/internal/config"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/factory"
	"github.com/baitline/scam-gateway/internal/logging"
	"github.com/baitline/scam-gateway/internal/ports"
	"github.com/baitline/scam-gateway/internal/ratelimit"
	"github.com/baitline/scam-gateway/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register backend capability clients
	if err := container.Provide(func(f *factory.LLMFactory) (core.ClassifierClient, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.LLMFactory) (core.ResponderClient, error) {
		return f.CreateResponder()
	}); err != nil {
		return nil, err
	}

	// Register classification cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register credential verifier
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*auth.Verifier, error) {
		secret := cfg.GetString("auth.api_key")
		if secret == "" {
			return nil, fmt.Errorf("auth.api_key is required")
		}
		return auth.NewVerifier(secret, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register rate limiter
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*ratelimit.Limiter, error) {
		window, err := cfg.GetDuration("ratelimit.window")
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit window: %w", err)
		}
		return ratelimit.NewLimiter(cfg.GetInt("ratelimit.requests"), window, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register gateway service
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		classifier core.ClassifierClient,
		responder core.ResponderClient,
		cacheRepo core.CacheRepository,
		cacheFactory *factory.CacheFactory,
	) (*core.GatewayService, error) {
		cacheTTL, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, fmt.Errorf("invalid cache TTL: %w", err)
		}
		backendTimeout, err := cfg.GetDuration("server.backend_timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid backend timeout: %w", err)
		}

		limits := cfg.GetLimits()
		validator := core.NewValidator(
			limits.MaxMessages,
			limits.MaxMessageLength,
			limits.MaxConversationLength,
			limits.MaxTextLength,
		)

		return core.NewGatewayService(
			classifier,
			responder,
			cacheRepo,
			validator,
			logger,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
			backendTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		service *core.GatewayService,
		verifier *auth.Verifier,
		limiter *ratelimit.Limiter,
	) ports.Server {
		serverCfg := cfg.GetServer()
		return httpapi.NewServer(
			service,
			verifier,
			limiter,
			logger,
			serverCfg.ListenAddress,
			serverCfg.AllowedOrigins,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
