package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JSmilg/veracity/internal/model"
)

// MaxArticleChars caps the article text sent to a model
const MaxArticleChars = 15000

// Provider extracts transfer claims from free-form article text
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract returns the transfer claims found in an article
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest is one article to analyse
type ExtractRequest struct {
	ArticleText    string
	Publication    string
	JournalistName string // Byline, when the page named one
}

// ExtractResponse holds the claims a model found
type ExtractResponse struct {
	Claims     []model.Rumour
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration

	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns defaults with extraction disabled
func DefaultConfig() Config {
	return Config{
		Timeout:   60 * time.Second,
		MaxTokens: 4096,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return c.Timeout
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 4096
	}
	return c.MaxTokens
}

const extractionPrompt = `You are a football transfer news analyst. Analyze the following article and extract any transfer-related claims made by journalists.

For each transfer claim found, extract:
- journalist_name: The journalist making or being cited for the claim
- claim_text: A concise summary of the claim (1-2 sentences)
- player_name: The player involved
- from_club: The player's current/selling club (if mentioned)
- to_club: The destination/buying club (if mentioned)
- transfer_fee: The reported fee (if mentioned, e.g. "50M", "Free transfer")
- certainty_level: One of %s
- source_type: "original" if this journalist is breaking the news, "citing" if they are reporting another journalist's claim
- cited_journalist: If source_type is "citing", the name of the original journalist

Rules:
- Only extract claims about player transfers, loans, or contract negotiations
- If no transfer claims are found, return an empty claims array
- Be precise with player and club names
- Determine certainty from language: "done deal"/"signed"/"here we go" = tier_1_done_deal, "close to signing"/"expected to sign"/"agreed terms" = tier_2_advanced, "in talks"/"bid submitted"/"sources say" = tier_3_active, "interested"/"target"/"tracking" = tier_4_concrete_interest, "eyeing"/"considering"/"looking at" = tier_5_early_intent, "linked with"/"rumoured"/"could"/"might" = tier_6_speculation

Publication: %s
Known journalist: %s

Article text:
%s

Respond with ONLY valid JSON in this exact format:
{"claims": [...]}
`

// BuildPrompt renders the extraction prompt for one article
func BuildPrompt(req ExtractRequest) string {
	tiers := make([]string, len(model.AllTiers))
	for i, t := range model.AllTiers {
		tiers[i] = fmt.Sprintf("%q", string(t))
	}
	return fmt.Sprintf(extractionPrompt,
		strings.Join(tiers, ", "),
		orUnknown(req.Publication),
		orUnknown(req.JournalistName),
		truncate(req.ArticleText, MaxArticleChars),
	)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// truncate cuts s to at most n characters without splitting a rune
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ParseClaims decodes a model reply of the form {"claims": [...]}. A reply
// wrapped in a markdown code fence is unwrapped first. Claims without text
// are dropped, and tiers or source types outside the known set are cleared.
func ParseClaims(reply string) ([]model.Rumour, error) {
	reply = stripCodeFence(strings.TrimSpace(reply))

	var doc struct {
		Claims []model.Rumour `json:"claims"`
	}
	if err := json.Unmarshal([]byte(reply), &doc); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	claims := doc.Claims[:0]
	for _, c := range doc.Claims {
		c.Text = strings.TrimSpace(c.Text)
		if c.Text == "" {
			continue
		}
		if !c.Certainty.Valid() {
			c.Certainty = ""
		}
		switch c.SourceType {
		case model.SourceOriginal, model.SourceCiting:
		default:
			c.SourceType = model.SourceOriginal
		}
		if c.SourceType == model.SourceOriginal {
			c.CitedJournalist = ""
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if last := strings.TrimSpace(lines[len(lines)-1]); strings.HasPrefix(last, "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
