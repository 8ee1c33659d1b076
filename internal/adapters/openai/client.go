package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/baitline/scam-gateway/internal/adapters/prompt"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client talks to any OpenAI-compatible chat-completion endpoint. The base
// URL is configurable, which covers the hosted inference routers the gateway
// was built against as well as OpenAI itself. One instance serves a single
// role (classifier or responder); the factory builds one per role.
type Client struct {
	api           *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new OpenAI-compatible client
func NewClient(
	api *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		api:           api,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ClassifyText asks the model to classify the text as scam or safe, returning
// the model's raw two-line reply for the core parser to interpret.
func (c *Client) ClassifyText(ctx context.Context, text string) (string, error) {
	processed := c.textProcessor.ProcessText(text, c.maxBodySize)
	return c.complete(ctx, prompt.ClassifierSystem, processed)
}

// GenerateReply asks the model for the next conversational turn given the
// flattened transcript.
func (c *Client) GenerateReply(ctx context.Context, transcript string) (string, error) {
	processed := c.textProcessor.ProcessText(transcript, c.maxBodySize)
	return c.complete(ctx, "", prompt.ResponderPreamble+processed)
}

// complete performs one chat completion. An empty system prompt sends a
// single user message.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       c.modelName,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.translateError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response contained no choices", core.ErrBackendMalformed)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// translateError maps transport and API failures onto the gateway taxonomy so
// the dispatcher never sees a raw provider error type.
func (c *Client) translateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrBackendTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", core.ErrBackendTimeout, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: upstream returned HTTP %d", core.ErrBackendUnavailable, apiErr.HTTPStatusCode)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: connection error", core.ErrBackendUnavailable)
	}

	return fmt.Errorf("%w: %v", core.ErrBackendUnavailable, err)
}
