package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
)

const defaultMaxTokens = 4096

type Client struct {
	*openai.Client
	Model     string
	MaxTokens int
}

func NewClient(apiKey, model string, maxTokens int) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model, MaxTokens: maxTokens}
}

// NewClientWithConfig is used when the base URL differs (proxies, tests).
func NewClientWithConfig(cfg openai.ClientConfig, model string, maxTokens int) *Client {
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, MaxTokens: maxTokens}
}

func (c *Client) Generate(ctx context.Context, userPrompt string) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System()},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
