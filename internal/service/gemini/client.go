package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
)

// Client implements TextGenerator backed by the Gemini API via the official
// GenAI SDK.
type Client struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
	temperature     float32
	timeout         time.Duration
}

var _ domrepo.TextGenerator = (*Client)(nil)

func New(ctx context.Context, apiKey, model string, maxOutputTokens int, temperature float64, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client:          client,
		model:           model,
		maxOutputTokens: int32(maxOutputTokens),
		temperature:     float32(temperature),
		timeout:         timeout,
	}, nil
}

// Generate requests a completion for the prompt under the given system
// instruction. Errors are returned to the caller; the summarizer decides
// how to degrade.
func (c *Client) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxOutputTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
