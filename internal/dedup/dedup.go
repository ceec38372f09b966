// Package dedup suppresses near-duplicate claims.
package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JSmilg/veracity/internal/model"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// Scope selects which existing claims a candidate is compared against
type Scope string

const (
	// ScopeJournalist compares against the same journalist's claims about the
	// same player and clubs
	ScopeJournalist Scope = "journalist"
	// ScopePlayer compares against any claim about the same player
	ScopePlayer Scope = "player"
)

// DefaultThreshold is the similarity a candidate must exceed to be a duplicate
const DefaultThreshold = 0.85

// Query narrows the existing claims looked up for comparison. Empty fields
// are not filtered on; string fields compare case-insensitively.
type Query struct {
	JournalistName string
	PlayerName     string
	FromClub       string
	ToClub         string
	Since          time.Time
}

// ClaimFinder looks up recent claims
type ClaimFinder interface {
	FindRecentClaims(ctx context.Context, q Query) ([]model.Claim, error)
}

// Candidate is a claim about to be stored
type Candidate struct {
	JournalistName string
	PlayerName     string
	FromClub       string
	ToClub         string
	Text           string
}

// Deduplicator decides whether a candidate repeats a recent claim
type Deduplicator struct {
	finder    ClaimFinder
	logger    *zap.Logger
	threshold float64
	window    time.Duration
	scope     Scope
	now       func() time.Time
}

// Option configures a Deduplicator
type Option func(*Deduplicator)

// WithThreshold overrides the similarity threshold
func WithThreshold(threshold float64) Option {
	return func(d *Deduplicator) { d.threshold = threshold }
}

// WithWindow overrides the trailing time window
func WithWindow(window time.Duration) Option {
	return func(d *Deduplicator) { d.window = window }
}

// WithScope selects the comparison scope
func WithScope(scope Scope) Option {
	return func(d *Deduplicator) { d.scope = scope }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(d *Deduplicator) { d.now = now }
}

// New creates a Deduplicator with a 30 day journalist-scoped window
func New(finder ClaimFinder, logger *zap.Logger, opts ...Option) *Deduplicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Deduplicator{
		finder:    finder,
		logger:    logger,
		threshold: DefaultThreshold,
		window:    30 * 24 * time.Hour,
		scope:     ScopeJournalist,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsDuplicate reports whether c is more than threshold-similar to an
// existing claim in scope. A journalist-scoped candidate without a
// journalist name, or any candidate without text, is never a duplicate.
func (d *Deduplicator) IsDuplicate(ctx context.Context, c Candidate) (bool, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return false, nil
	}

	q := Query{Since: d.now().Add(-d.window)}
	switch d.scope {
	case ScopePlayer:
		q.PlayerName = c.PlayerName
	default:
		if strings.TrimSpace(c.JournalistName) == "" {
			return false, nil
		}
		q.JournalistName = c.JournalistName
		q.PlayerName = c.PlayerName
		q.FromClub = c.FromClub
		q.ToClub = c.ToClub
	}

	existing, err := d.finder.FindRecentClaims(ctx, q)
	if err != nil {
		return false, fmt.Errorf("failed to load recent claims: %w", err)
	}

	lower := strings.ToLower(text)
	for _, ec := range existing {
		ratio := Similarity(lower, strings.ToLower(ec.Text))
		if ratio > d.threshold {
			d.logger.Info("duplicate claim",
				zap.Int64("existing_id", ec.ID),
				zap.Float64("similarity", ratio),
				zap.String("text", truncate(text, 60)),
			)
			return true, nil
		}
	}
	return false, nil
}

// Similarity is the sequence-matching ratio of two strings compared rune
// by rune: twice the matched runes over the total length
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// truncate keeps the first n characters of s
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
