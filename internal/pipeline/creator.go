package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/classify"
	"github.com/JSmilg/veracity/internal/dedup"
	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/extract"
	"github.com/JSmilg/veracity/internal/model"
)

// AggregatedDedupWindow is how far back rumours from columns and feeds are
// compared for duplicates
const AggregatedDedupWindow = 7 * 24 * time.Hour

var (
	// ErrDuplicate is returned for a rumour that repeats a recent claim
	ErrDuplicate = errors.New("duplicate claim")
	// ErrIncomplete is returned for a rumour with no text or no one to attribute it to
	ErrIncomplete = errors.New("claim has no text or journalist")
)

// KnownJournalists maps reporters to their Twitter handles
var KnownJournalists = map[string]string{
	"Fabrizio Romano":     "@FabrizioRomano",
	"David Ornstein":      "@David_Ornstein",
	"Florian Plettenberg": "@Plettigoal",
	"Matteo Moretto":      "@MatteMoretto",
	"Ben Jacobs":          "@JacobsBen",
}

// AuthorSource finds the byline of a linked article
type AuthorSource interface {
	Author(ctx context.Context, rawURL string) string
}

// Analysis is what the extractors and classifiers make of one claim text
type Analysis struct {
	Text        string              `json:"text"`
	Players     []string            `json:"players"`
	PlayerName  string              `json:"player_name"`
	Clubs       []string            `json:"clubs"`
	FromClub    string              `json:"from_club"`
	ToClub      string              `json:"to_club"`
	TransferFee string              `json:"transfer_fee"`
	Certainty   model.CertaintyTier `json:"certainty_level"`
	IsNegative  bool                `json:"is_transfer_negative"`
	CurrentClub string              `json:"reference_current_club,omitempty"`
}

// CreateOptions controls how a rumour becomes a claim
type CreateOptions struct {
	DryRun bool

	// Aggregated marks rumours relayed by a column or feed. Their journalist
	// is the byline of the linked article, falling back to the publication,
	// and duplicates are looked for by player over a short window.
	Aggregated bool
}

// Creator turns rumours into attributed, deduplicated claims
type Creator struct {
	store     Store
	extractor *extract.Extractor
	authors   AuthorSource
	publisher events.Publisher
	logger    *zap.Logger
	dedup     *dedup.Deduplicator
	aggDedup  *dedup.Deduplicator
	now       func() time.Time
}

// NewCreator creates a claim creator. dd checks ordinary rumours and
// aggDD aggregated ones. authors may be nil.
func NewCreator(st Store, ex *extract.Extractor, authors AuthorSource, pub events.Publisher, logger *zap.Logger, dd, aggDD *dedup.Deduplicator) *Creator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pub == nil {
		pub = events.NewLogPublisher(logger)
	}
	return &Creator{
		store:     st,
		extractor: ex,
		authors:   authors,
		publisher: pub,
		logger:    logger,
		dedup:     dd,
		aggDedup:  aggDD,
		now:       time.Now,
	}
}

// Analyse runs entity extraction, direction, negation and confidence over
// text. A negative claim has no destination; a missing seller is filled
// from the reference data of the player.
func (c *Creator) Analyse(ctx context.Context, text string) Analysis {
	ent := c.extractor.Extract(ctx, text)
	from, to := classify.ClassifyDirection(text, ent.Clubs)
	from = extract.BackfillFrom(from, to, ent.CurrentClub)

	negative := classify.IsNegative(text)
	if negative {
		to = ""
	}

	return Analysis{
		Text:        text,
		Players:     ent.Players,
		PlayerName:  ent.PlayerName,
		Clubs:       ent.Clubs,
		FromClub:    from,
		ToClub:      to,
		TransferFee: ent.Fee,
		Certainty:   classify.ClassifyConfidence(text),
		IsNegative:  negative,
		CurrentClub: ent.CurrentClub,
	}
}

// Build merges a rumour with the analysis of its text. Fields the rumour
// already carries win, except the tier and negation, which always come
// from the classifiers.
func (c *Creator) Build(ctx context.Context, r model.Rumour) model.Claim {
	text := strings.TrimSpace(r.Text)
	a := c.Analyse(ctx, text)

	claim := model.Claim{
		Text:        text,
		Publication: strings.TrimSpace(r.Publication),
		ArticleURL:  r.ArticleURL,
		ClaimDate:   r.ClaimDate,
		PlayerName:  first(r.PlayerName, a.PlayerName),
		FromClub:    first(r.FromClub, a.FromClub),
		ToClub:      first(r.ToClub, a.ToClub),
		TransferFee: first(r.TransferFee, a.TransferFee),
		Certainty:   a.Certainty,
		IsNegative:  a.IsNegative || r.IsNegative,
		SourceType:  model.SourceOriginal,
		Status:      model.StatusPending,
	}
	if claim.IsNegative {
		claim.ToClub = ""
	}
	if claim.ClaimDate.IsZero() {
		claim.ClaimDate = c.now().UTC()
	}
	if r.SourceType == model.SourceCiting && strings.TrimSpace(r.CitedJournalist) != "" {
		claim.SourceType = model.SourceCiting
	}
	return claim
}

// Create builds, attributes and stores a claim. It returns ErrIncomplete or
// ErrDuplicate for rumours that are skipped. In a dry run nothing is
// written and the returned claim has no ID.
func (c *Creator) Create(ctx context.Context, r model.Rumour, opts CreateOptions) (*model.Claim, error) {
	claim := c.Build(ctx, r)
	if claim.Text == "" {
		return nil, ErrIncomplete
	}

	var name string
	if opts.Aggregated {
		if err := c.checkDuplicate(ctx, c.aggDedup, "", claim); err != nil {
			return nil, err
		}
		name = c.attribute(ctx, r, true)
		if name == "" {
			return nil, ErrIncomplete
		}
	} else {
		name = c.attribute(ctx, r, false)
		if name == "" {
			return nil, ErrIncomplete
		}
		if err := c.checkDuplicate(ctx, c.dedup, name, claim); err != nil {
			return nil, err
		}
	}
	claim.JournalistName = name

	if opts.DryRun {
		return &claim, nil
	}

	j, err := c.journalist(ctx, name, claim.Publication)
	if err != nil {
		return nil, err
	}
	claim.JournalistID = j.ID
	claim.JournalistName = j.Name

	if claim.SourceType == model.SourceCiting {
		cited, err := c.journalist(ctx, strings.TrimSpace(r.CitedJournalist), "")
		if err != nil {
			return nil, err
		}
		claim.CitedJournalistID = &cited.ID
	}

	if err := c.store.InsertClaim(ctx, &claim); err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}

	c.logger.Info("claim created",
		zap.Int64("id", claim.ID),
		zap.String("player", claim.PlayerName),
		zap.String("to_club", claim.ToClub),
		zap.String("journalist", claim.JournalistName),
	)
	c.publish(ctx, claim)
	return &claim, nil
}

// attribute names the journalist responsible for a rumour
func (c *Creator) attribute(ctx context.Context, r model.Rumour, aggregated bool) string {
	if name := strings.TrimSpace(r.JournalistName); name != "" {
		return name
	}
	if aggregated && c.authors != nil && r.ArticleURL != "" {
		if author := c.authors.Author(ctx, r.ArticleURL); author != "" {
			return author
		}
	}
	return strings.TrimSpace(r.Publication)
}

func (c *Creator) checkDuplicate(ctx context.Context, d *dedup.Deduplicator, journalist string, claim model.Claim) error {
	if d == nil {
		return nil
	}
	dup, err := d.IsDuplicate(ctx, dedup.Candidate{
		JournalistName: journalist,
		PlayerName:     claim.PlayerName,
		FromClub:       claim.FromClub,
		ToClub:         claim.ToClub,
		Text:           claim.Text,
	})
	if err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if dup {
		return ErrDuplicate
	}
	return nil
}

// journalist gets or creates a journalist, recording a new publication and
// a known Twitter handle on existing records
func (c *Creator) journalist(ctx context.Context, name, publication string) (*model.Journalist, error) {
	j := model.Journalist{Name: name, TwitterHandle: KnownJournalists[name]}
	if publication != "" {
		j.Publications = model.StringList{publication}
	}

	got, created, err := c.store.GetOrCreateJournalist(ctx, j)
	if err != nil {
		return nil, err
	}
	if created {
		return got, nil
	}

	if publication != "" && !got.HasPublication(publication) {
		if err := c.store.AddJournalistPublication(ctx, got.ID, publication); err != nil {
			return nil, err
		}
		got.Publications = append(got.Publications, publication)
		c.logger.Info("publication added", zap.String("journalist", name), zap.String("publication", publication))
	}
	if got.TwitterHandle == "" && j.TwitterHandle != "" {
		if err := c.store.SetTwitterHandle(ctx, got.ID, j.TwitterHandle); err != nil {
			return nil, err
		}
		got.TwitterHandle = j.TwitterHandle
	}
	return got, nil
}

func (c *Creator) publish(ctx context.Context, claim model.Claim) {
	err := c.publisher.Publish(ctx, events.Event{
		Type:         events.ClaimCreated,
		ClaimID:      claim.ID,
		JournalistID: claim.JournalistID,
		Journalist:   claim.JournalistName,
		PlayerName:   claim.PlayerName,
		ToStatus:     string(claim.Status),
		Timestamp:    c.now().UTC(),
	})
	if err != nil {
		c.logger.Warn("publish claim event failed", zap.Int64("claim_id", claim.ID), zap.Error(err))
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
