package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
)

const defaultModel = "gemini-2.0-flash"

// harmCategories get the configured safety threshold.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
	threshold genai.HarmBlockThreshold
}

// NewClient builds a Gemini client. threshold is a HarmBlockThreshold name
// such as BLOCK_MEDIUM_AND_ABOVE; empty keeps the provider default.
func NewClient(ctx context.Context, apiKey, model string, maxTokens int, threshold string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
		threshold: genai.HarmBlockThreshold(threshold),
	}, nil
}

func (c *Client) config() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = c.maxTokens
	}
	if c.threshold != "" {
		for _, cat := range harmCategories {
			cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
				Category:  cat,
				Threshold: c.threshold,
			})
		}
	}
	return cfg
}

func (c *Client) Generate(ctx context.Context, userPrompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.config())
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
