package advisor

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. A nil httpClient uses the
// SDK default; a non-empty baseURL overrides the API endpoint.
func NewGeminiProvider(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Reply implements Provider.
func (p *GeminiProvider) Reply(ctx context.Context, message string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(message), nil)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrEmptyReply)
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyReply)
	}
	return text, nil
}
