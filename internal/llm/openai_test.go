package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/JSmilg/veracity/internal/model"
)

const claimsReply = `{"claims": [
  {"journalist_name": "Fabrizio Romano", "claim_text": "Arsenal are close to signing Eberechi Eze from Crystal Palace.",
   "player_name": "Eberechi Eze", "from_club": "Crystal Palace", "to_club": "Arsenal", "transfer_fee": "£60m",
   "certainty_level": "tier_2_advanced", "source_type": "original"}
]}`

func chatServer(t *testing.T, content string, check func(openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if check != nil {
			check(req)
		}

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: content,
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 321},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIProvider_Extract_Success(t *testing.T) {
	server := chatServer(t, claimsReply, func(req openai.ChatCompletionRequest) {
		if req.Model != "gpt-4o-mini" {
			t.Errorf("Expected model gpt-4o-mini, got %s", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Publication: The Athletic") {
			t.Errorf("Expected prompt with publication, got %+v", req.Messages)
		}
	})
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Extract(context.Background(), ExtractRequest{
		ArticleText: "Arsenal are close to signing Eberechi Eze.",
		Publication: "The Athletic",
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(resp.Claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(resp.Claims))
	}
	c := resp.Claims[0]
	if c.PlayerName != "Eberechi Eze" || c.ToClub != "Arsenal" || c.Certainty != model.TierAdvanced {
		t.Errorf("Unexpected claim: %+v", c)
	}
	if resp.TokensUsed != 321 {
		t.Errorf("Expected 321 tokens, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_Extract_EmptyArticle(t *testing.T) {
	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Extract(context.Background(), ExtractRequest{ArticleText: "   "})
	if err != nil {
		t.Fatalf("Expected no call for empty article, got %v", err)
	}
	if len(resp.Claims) != 0 {
		t.Errorf("Expected no claims, got %d", len(resp.Claims))
	}
}

func TestOpenAIProvider_Extract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Extract(context.Background(), ExtractRequest{ArticleText: "text"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_Extract_BadReply(t *testing.T) {
	server := chatServer(t, "Sorry, I can't help with that.", nil)
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Extract(context.Background(), ExtractRequest{ArticleText: "text"}); err == nil {
		t.Fatal("Expected error for a non-JSON reply, got nil")
	}
}

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}
