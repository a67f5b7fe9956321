package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
)

// Messager is the subset of the SDK used here; tests swap it out.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Client struct {
	messages  Messager
	model     anthropic.Model
	maxTokens int64
}

func NewClient(apiKey, model string, maxTokens int) *Client {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return newWithMessager(&c.Messages, model, maxTokens)
}

func newWithMessager(m Messager, model string, maxTokens int) *Client {
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{messages: m, model: anthropic.Model(model), maxTokens: int64(maxTokens)}
}

func (c *Client) Generate(ctx context.Context, userPrompt string) (string, error) {
	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: prompt.System()}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt))},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ai.ErrEmptyResponse
	}
	return sb.String(), nil
}
