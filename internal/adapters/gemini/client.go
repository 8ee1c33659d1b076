package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baitline/scam-gateway/internal/adapters/prompt"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/utils"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// Client is a backend adapter using Google Gemini. One instance serves a
// single role (classifier or responder).
type Client struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new Gemini-backed client
func NewClient(
	client *genai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Client{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Close closes the underlying Gemini client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ClassifyText asks the model to classify the text as scam or safe, returning
// the raw two-line reply for the core parser.
func (c *Client) ClassifyText(ctx context.Context, text string) (string, error) {
	processed := c.textProcessor.ProcessText(text, c.maxBodySize)
	return c.generate(ctx, prompt.ClassifierSystem+"\n\n"+processed)
}

// GenerateReply asks the model for the next conversational turn given the
// flattened transcript.
func (c *Client) GenerateReply(ctx context.Context, transcript string) (string, error) {
	processed := c.textProcessor.ProcessText(transcript, c.maxBodySize)
	return c.generate(ctx, prompt.ResponderPreamble+processed)
}

func (c *Client) generate(ctx context.Context, input string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(input))
	if err != nil {
		return "", c.translateError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from Gemini", core.ErrBackendMalformed)
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(responseText), nil
}

// translateError maps Gemini API failures onto the gateway taxonomy.
func (c *Client) translateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrBackendTimeout, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: upstream returned HTTP %d", core.ErrBackendUnavailable, apiErr.Code)
	}

	return fmt.Errorf("%w: %v", core.ErrBackendUnavailable, err)
}
