package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/classify"
	"github.com/JSmilg/veracity/internal/extract"
	"github.com/JSmilg/veracity/internal/model"
)

// Claim fields the backfill job can rewrite
const (
	FieldPlayerName  = "player_name"
	FieldTransferFee = "transfer_fee"
	FieldFromClub    = "from_club"
	FieldToClub      = "to_club"
	FieldNegative    = "is_transfer_negative"
	FieldCertainty   = "certainty_level"
)

// BackfillFields lists every field, in report order
var BackfillFields = []string{
	FieldPlayerName,
	FieldTransferFee,
	FieldFromClub,
	FieldToClub,
	FieldNegative,
	FieldCertainty,
}

// BackfillOptions controls a backfill run
type BackfillOptions struct {
	Fields    []string // Empty means all
	OnlyEmpty bool     // Leave fields that already hold a value
	ClaimIDs  []int64  // Empty means every claim
	DryRun    bool
}

// ClaimChange is one rewritten claim
type ClaimChange struct {
	ID     int64       `json:"id"`
	Text   string      `json:"claim_text"`
	Fields []string    `json:"fields"`
	After  model.Claim `json:"-"`
}

// BackfillSummary reports a backfill run
type BackfillSummary struct {
	Total   int            `json:"total"`
	Updated int            `json:"updated"`
	ByField map[string]int `json:"by_field"`
	Changes []ClaimChange  `json:"changes,omitempty"`
}

// Backfill re-runs extraction over stored claims. Extracted values replace
// stored ones only when non-empty; negation and certainty are always
// recomputed. Scores are not touched.
func (p *Pipeline) Backfill(ctx context.Context, opts BackfillOptions) (BackfillSummary, error) {
	fields := make(map[string]bool)
	for _, f := range opts.Fields {
		fields[f] = true
	}
	if len(fields) == 0 {
		for _, f := range BackfillFields {
			fields[f] = true
		}
	}
	for f := range fields {
		if !isBackfillField(f) {
			return BackfillSummary{}, fmt.Errorf("unknown field %q", f)
		}
	}

	claims, err := p.store.ListClaims(ctx, opts.ClaimIDs)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("list claims: %w", err)
	}

	sum := BackfillSummary{Total: len(claims), ByField: make(map[string]int)}
	ex := p.creator.extractor
	for _, c := range claims {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		after, changed := backfillClaim(ctx, ex, c, fields, opts.OnlyEmpty)
		if len(changed) == 0 {
			continue
		}

		sum.Updated++
		for _, f := range changed {
			sum.ByField[f]++
		}
		sum.Changes = append(sum.Changes, ClaimChange{ID: c.ID, Text: c.Text, Fields: changed, After: after})

		if !opts.DryRun {
			if err := p.store.UpdateClaimExtraction(ctx, after); err != nil {
				return sum, err
			}
		}
	}

	p.logger.Info("backfill finished",
		zap.Int("total", sum.Total),
		zap.Int("updated", sum.Updated),
		zap.Bool("dry_run", opts.DryRun),
	)
	return sum, nil
}

func isBackfillField(f string) bool {
	for _, known := range BackfillFields {
		if f == known {
			return true
		}
	}
	return false
}

func backfillClaim(ctx context.Context, ex *extract.Extractor, c model.Claim, fields map[string]bool, onlyEmpty bool) (model.Claim, []string) {
	text := c.Text
	var changed []string
	mark := func(field string) {
		for _, f := range changed {
			if f == field {
				return
			}
		}
		changed = append(changed, field)
	}
	set := func(field string, cur *string, v string) {
		if !fields[field] || v == "" || (onlyEmpty && *cur != "") || v == *cur {
			return
		}
		*cur = v
		mark(field)
	}

	ent := ex.Extract(ctx, text)
	refClub := ""
	if fields[FieldPlayerName] {
		set(FieldPlayerName, &c.PlayerName, ent.PlayerName)
		refClub = ent.CurrentClub
	}

	set(FieldTransferFee, &c.TransferFee, ent.Fee)

	if fields[FieldFromClub] || fields[FieldToClub] {
		var from, to string
		if len(ent.Clubs) > 0 {
			from, to = classify.ClassifyDirection(text, ent.Clubs)
			from = extract.BackfillFrom(from, to, refClub)
		}
		set(FieldFromClub, &c.FromClub, from)
		set(FieldToClub, &c.ToClub, to)
	}

	if fields[FieldNegative] {
		if neg := classify.IsNegative(text); neg != c.IsNegative {
			c.IsNegative = neg
			mark(FieldNegative)
		}
	}
	if c.IsNegative && c.ToClub != "" {
		c.ToClub = ""
		mark(FieldToClub)
	}

	if fields[FieldCertainty] {
		if tier := classify.ClassifyConfidence(text); tier != c.Certainty {
			c.Certainty = tier
			mark(FieldCertainty)
		}
	}
	return c, changed
}

// Transition counts claims moved from one tier to another
type Transition struct {
	From  model.CertaintyTier `json:"from"`
	To    model.CertaintyTier `json:"to"`
	Count int                 `json:"count"`
}

// ReclassifySummary reports a reclassification run
type ReclassifySummary struct {
	Total       int           `json:"total"`
	Changed     int           `json:"changed"`
	Transitions []Transition  `json:"transitions,omitempty"`
	Changes     []ClaimChange `json:"changes,omitempty"`
}

// ReclassifyConfidence recomputes the certainty tier of every claim
func (p *Pipeline) ReclassifyConfidence(ctx context.Context, dryRun bool) (ReclassifySummary, error) {
	claims, err := p.store.ListClaims(ctx, nil)
	if err != nil {
		return ReclassifySummary{}, fmt.Errorf("list claims: %w", err)
	}

	sum := ReclassifySummary{Total: len(claims)}
	counts := make(map[[2]model.CertaintyTier]int)
	for _, c := range claims {
		tier := classify.ClassifyConfidence(c.Text)
		if tier == c.Certainty {
			continue
		}
		sum.Changed++
		counts[[2]model.CertaintyTier{c.Certainty, tier}]++

		c.Certainty = tier
		if !dryRun {
			if err := p.store.UpdateClaimExtraction(ctx, c); err != nil {
				return sum, err
			}
		}
	}

	for k, n := range counts {
		sum.Transitions = append(sum.Transitions, Transition{From: k[0], To: k[1], Count: n})
	}
	sort.Slice(sum.Transitions, func(i, j int) bool {
		a, b := sum.Transitions[i], sum.Transitions[j]
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})

	p.logger.Info("confidence reclassified", zap.Int("total", sum.Total), zap.Int("changed", sum.Changed), zap.Bool("dry_run", dryRun))
	return sum, nil
}

// ReclassifyClubs re-runs club direction over every claim, replacing both
// clubs with whatever the classifier finds now
func (p *Pipeline) ReclassifyClubs(ctx context.Context, dryRun bool) (ReclassifySummary, error) {
	claims, err := p.store.ListClaims(ctx, nil)
	if err != nil {
		return ReclassifySummary{}, fmt.Errorf("list claims: %w", err)
	}

	sum := ReclassifySummary{Total: len(claims)}
	for _, c := range claims {
		from, to := classify.ClassifyDirection(c.Text, extract.Clubs(c.Text))
		if c.IsNegative {
			to = ""
		}
		if from == c.FromClub && to == c.ToClub {
			continue
		}
		sum.Changed++

		c.FromClub, c.ToClub = from, to
		sum.Changes = append(sum.Changes, ClaimChange{ID: c.ID, Text: c.Text, Fields: []string{FieldFromClub, FieldToClub}, After: c})
		if !dryRun {
			if err := p.store.UpdateClaimExtraction(ctx, c); err != nil {
				return sum, err
			}
		}
	}

	p.logger.Info("clubs reclassified", zap.Int("total", sum.Total), zap.Int("changed", sum.Changed), zap.Bool("dry_run", dryRun))
	return sum, nil
}
