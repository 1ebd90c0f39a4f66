package advisor

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"
)

const anthropicMaxTokens = 150

// AnthropicProvider implements Provider for Anthropic's Claude API.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider. Extra request
// options are appended after the API key.
func NewAnthropicProvider(apiKey, model string, opts ...option.RequestOption) *AnthropicProvider {
	client := anthropic.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)
	if model == "" {
		model = "claude-3-haiku-20240307"
	}

	return &AnthropicProvider{
		client: &client,
		model:  model,
	}
}

// Reply implements Provider.
func (p *AnthropicProvider) Reply(ctx context.Context, message string) (string, error) {
	log.Debug("sending tip request to Anthropic", "model", p.model, "length", len(message))

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	var text string
	if len(response.Content) > 0 {
		text = response.Content[0].Text
	}
	if text == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyReply)
	}
	return text, nil
}
