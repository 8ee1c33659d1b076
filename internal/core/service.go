package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/baitline/scam-gateway/internal/metrics"
	"go.uber.org/zap"
)

// GatewayService dispatches validated requests to the backend capabilities
// and turns their raw text replies into typed results. Every backend call is
// bounded by a timeout; backend failures are translated to the gateway's own
// error taxonomy and never surface raw provider errors.
type GatewayService struct {
	classifier     ClassifierClient
	responder      ResponderClient
	cache          CacheRepository
	validator      *Validator
	logger         *zap.Logger
	cacheEnabled   bool
	cacheTTL       time.Duration
	backendTimeout time.Duration
}

// NewGatewayService creates a new gateway service.
func NewGatewayService(
	classifier ClassifierClient,
	responder ResponderClient,
	cache CacheRepository,
	validator *Validator,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	backendTimeout time.Duration,
) *GatewayService {
	return &GatewayService{
		classifier:     classifier,
		responder:      responder,
		cache:          cache,
		validator:      validator,
		logger:         logger,
		cacheEnabled:   cacheEnabled,
		cacheTTL:       cacheTTL,
		backendTimeout: backendTimeout,
	}
}

// TextKey derives the cache key for a piece of classification input.
func TextKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Classify validates the input text, obtains the backend's raw classification
// reply and parses it into a structured result.
func (s *GatewayService) Classify(ctx context.Context, text string) (*ClassificationResult, error) {
	start := time.Now()

	trimmed, err := s.validator.ValidateText(text)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, TextKey(trimmed)); err == nil {
			s.logger.Debug("Classification cache hit", zap.String("text_hash", entry.TextHash))
			return &ClassificationResult{
				Label:         entry.Label,
				Tags:          entry.Tags,
				Justification: entry.Justification,
			}, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.backendTimeout)
	defer cancel()

	callStart := time.Now()
	raw, err := s.classifier.ClassifyText(callCtx, trimmed)
	metrics.RecordBackendCall("classifier", callStatus(err), time.Since(callStart))
	if err != nil {
		return nil, s.translateBackendError(err)
	}

	result, err := ParseClassification(raw)
	if err != nil {
		s.logger.Error("Failed to parse classification response", zap.Error(err))
		return nil, err
	}

	if s.cacheEnabled {
		entry := &CacheEntry{
			TextHash:      TextKey(trimmed),
			Label:         result.Label,
			Tags:          result.Tags,
			Justification: result.Justification,
			LastSeen:      time.Now(),
			ExpiresAt:     time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update classification cache", zap.Error(err))
		}
	}

	s.logger.Info("Classification completed",
		zap.String("label", result.Label),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// GenerateReply validates the conversation, flattens it into a transcript and
// obtains the next conversational turn from the reply-generation backend. A
// reply that is empty after cleanup is a server-side failure.
func (s *GatewayService) GenerateReply(ctx context.Context, conv *Conversation) (*ReplyResult, error) {
	start := time.Now()

	if err := s.validator.ValidateConversation(conv); err != nil {
		return nil, err
	}

	transcript := BuildTranscript(conv.Messages)

	callCtx, cancel := context.WithTimeout(ctx, s.backendTimeout)
	defer cancel()

	callStart := time.Now()
	raw, err := s.responder.GenerateReply(callCtx, transcript)
	metrics.RecordBackendCall("responder", callStatus(err), time.Since(callStart))
	if err != nil {
		return nil, s.translateBackendError(err)
	}

	reply := CleanReply(raw)
	if reply == "" {
		s.logger.Error("Backend generated an empty reply",
			zap.Int("raw_length", len(raw)))
		return nil, ErrEmptyGeneration
	}

	s.logger.Info("Reply generation completed",
		zap.Int("conversation_length", utf8.RuneCountInString(transcript)),
		zap.Duration("elapsed", time.Since(start)))

	return &ReplyResult{
		Reply:              reply,
		ConversationLength: utf8.RuneCountInString(transcript),
	}, nil
}

// callStatus names the outcome of a backend call for metrics.
func callStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// translateBackendError maps whatever a backend adapter returned onto the
// gateway taxonomy. Adapters already wrap their provider errors in the
// sentinels; anything else is treated as the backend being unavailable so no
// raw provider error ever reaches a client.
func (s *GatewayService) translateBackendError(err error) error {
	switch {
	case errors.Is(err, ErrBackendTimeout),
		errors.Is(err, ErrBackendUnavailable),
		errors.Is(err, ErrBackendMalformed):
		s.logger.Error("Backend call failed", zap.Error(err))
		return err
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Error("Backend call timed out", zap.Error(err))
		return fmt.Errorf("%w: deadline exceeded", ErrBackendTimeout)
	default:
		s.logger.Error("Backend call failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
}
