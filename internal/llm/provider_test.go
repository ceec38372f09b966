package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/JSmilg/veracity/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(ExtractRequest{ArticleText: "Chelsea want Osimhen."})

	for _, want := range []string{
		"Publication: Unknown",
		"Known journalist: Unknown",
		"Chelsea want Osimhen.",
		`"tier_6_speculation"`,
		`{"claims": [...]}`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestBuildPrompt_Truncates(t *testing.T) {
	article := strings.Repeat("é", MaxArticleChars+500)
	prompt := BuildPrompt(ExtractRequest{ArticleText: article})

	if strings.Contains(prompt, strings.Repeat("é", MaxArticleChars+1)) {
		t.Error("Expected article to be truncated")
	}
	if !utf8.ValidString(prompt) {
		t.Error("Expected truncation on a rune boundary")
	}
}

func TestParseClaims(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    int
		wantErr bool
	}{
		{"plain", claimsReply, 1, false},
		{"fenced", "```json\n" + claimsReply + "\n```", 1, false},
		{"fence without language", "```\n" + claimsReply + "\n```", 1, false},
		{"empty claims", `{"claims": []}`, 0, false},
		{"missing text dropped", `{"claims": [{"player_name": "Eze"}]}`, 0, false},
		{"not json", "No claims found.", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseClaims(tt.reply)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if len(claims) != tt.want {
				t.Errorf("Expected %d claims, got %d", tt.want, len(claims))
			}
		})
	}
}

func TestParseClaims_Normalises(t *testing.T) {
	claims, err := ParseClaims(`{"claims": [
		{"claim_text": "Spurs eye Semenyo", "certainty_level": "very likely", "source_type": "rumour", "cited_journalist": "Someone"},
		{"claim_text": "Per Sky, Liverpool bid", "certainty_level": "tier_3_active", "source_type": "citing", "cited_journalist": "Sky Sports"}
	]}`)
	if err != nil {
		t.Fatalf("ParseClaims failed: %v", err)
	}

	if claims[0].Certainty != "" {
		t.Errorf("Expected unknown tier cleared, got %q", claims[0].Certainty)
	}
	if claims[0].SourceType != model.SourceOriginal || claims[0].CitedJournalist != "" {
		t.Errorf("Expected unknown source type to become original, got %+v", claims[0])
	}
	if claims[1].SourceType != model.SourceCiting || claims[1].CitedJournalist != "Sky Sports" {
		t.Errorf("Expected citing claim kept, got %+v", claims[1])
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("Expected disabled provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "gemini"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "Claude", APIKey: "k"})
	if err != nil {
		t.Fatalf("Expected anthropic provider, got %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %s", p.Name())
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(
		model.LLMConfig{Provider: "openai", Model: "gpt-4o", APIKey: "k", MaxTokens: 2048},
		model.HTTPConfig{HTTPSProxy: "http://proxy:3128"},
	)
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o" || cfg.MaxTokens != 2048 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("Expected proxy carried over, got %q", cfg.HTTPSProxy)
	}
}
