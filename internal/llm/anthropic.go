package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/JSmilg/veracity/internal/fetch"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicProvider implements Provider with the Messages API
type AnthropicProvider struct {
	client *anthropic.Client
	config Config
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(&http.Client{
			Timeout: config.timeout(),
			Transport: &http.Transport{
				Proxy: fetch.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
			},
		}),
	}
	if config.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(config.BaseURL, "/")))
	}

	model := config.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(config.APIKey, opts...),
		config: config,
		model:  model,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// IsAvailable sends a minimal message
func (p *AnthropicProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(p.model),
		MaxTokens: 10,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage("Hi")},
	})
	return err == nil
}

// Extract asks the model for the article's claims
func (p *AnthropicProvider) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if strings.TrimSpace(req.ArticleText) == "" {
		return &ExtractResponse{Model: p.model}, nil
	}

	temperature := float32(0)
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.config.maxTokens(),
		Temperature: &temperature,
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(BuildPrompt(req))},
	})
	if err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}

	var reply string
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			reply = *block.Text
			break
		}
	}
	if reply == "" {
		return nil, fmt.Errorf("no content in Anthropic response")
	}

	claims, err := ParseClaims(reply)
	if err != nil {
		return nil, fmt.Errorf("anthropic reply: %w", err)
	}

	return &ExtractResponse{
		Claims:     claims,
		Model:      string(resp.Model),
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}
