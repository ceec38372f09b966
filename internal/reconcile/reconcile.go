// Package reconcile matches pending claims against confirmed transfers.
package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JSmilg/veracity/internal/match"
	"github.com/JSmilg/veracity/internal/model"
	"go.uber.org/zap"
)

// Match pairs a claim with the transfer that confirmed it
type Match struct {
	Claim    model.Claim
	Transfer model.ConfirmedTransfer
}

// ClaimUpdater persists the validation fields of a claim
type ClaimUpdater interface {
	UpdateClaimValidation(ctx context.Context, claim model.Claim) error
}

// ChangeHandler is told about every claim whose validation changed
type ChangeHandler interface {
	OnClaimChanged(ctx context.Context, before, after model.Claim) error
}

// Validator confirms pending claims
type Validator struct {
	updater ClaimUpdater
	handler ChangeHandler
	logger  *zap.Logger
	now     func() time.Time
}

// NewValidator creates a validator. handler may be nil.
func NewValidator(updater ClaimUpdater, handler ChangeHandler, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		updater: updater,
		handler: handler,
		logger:  logger,
		now:     time.Now,
	}
}

// MergeTransfers concatenates feed results and drops later entries whose
// trimmed, lower-cased (player, to club) key was already seen. List order
// therefore sets precedence between feeds.
func MergeTransfers(lists ...[]model.ConfirmedTransfer) []model.ConfirmedTransfer {
	seen := make(map[[2]string]bool)
	var merged []model.ConfirmedTransfer
	for _, list := range lists {
		for _, t := range list {
			key := [2]string{
				strings.ToLower(strings.TrimSpace(t.PlayerName)),
				strings.ToLower(strings.TrimSpace(t.ToClub)),
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, t)
		}
	}
	return merged
}

// IsMatch reports whether transfer confirms claim. The players must match,
// the claim must not postdate the transfer, and every club side the claim
// names must match the transfer. A claim naming no club never matches.
func IsMatch(t model.ConfirmedTransfer, c model.Claim) bool {
	if !match.Players(t.PlayerName, c.PlayerName) {
		return false
	}

	if t.TransferDate != nil && !c.ClaimDate.IsZero() {
		if dateOnly(c.ClaimDate).After(dateOnly(*t.TransferDate)) {
			return false
		}
	}

	hasFrom := strings.TrimSpace(c.FromClub) != ""
	hasTo := strings.TrimSpace(c.ToClub) != ""
	if !hasFrom && !hasTo {
		return false
	}

	if hasFrom && !match.Clubs(t.FromClub, c.FromClub) {
		return false
	}
	if hasTo && !match.AnyClub(t.ToClub, c.ToClub) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Notes is the validation note written on an auto-confirmed claim
func Notes(t model.ConfirmedTransfer) string {
	fee := ""
	if t.Fee != "" {
		fee = " (" + t.Fee + ")"
	}
	return fmt.Sprintf("Auto-validated: %s from %s to %s%s", t.PlayerName, t.FromClub, t.ToClub, fee)
}

// Validate matches pending claims against transfers. Transfers are tried in
// order and each claim is matched at most once. Outside a dry run every
// matched claim is marked confirmed true and persisted, and the change
// handler is notified. Empty inputs yield no matches.
func (v *Validator) Validate(ctx context.Context, pending []model.Claim, transfers []model.ConfirmedTransfer, dryRun bool) ([]Match, error) {
	if len(pending) == 0 || len(transfers) == 0 {
		return nil, nil
	}

	matched := make([]bool, len(pending))
	var matches []Match

	for _, t := range transfers {
		for i, c := range pending {
			if matched[i] || c.Status != model.StatusPending {
				continue
			}
			if !IsMatch(t, c) {
				continue
			}
			matched[i] = true

			if dryRun {
				matches = append(matches, Match{Claim: c, Transfer: t})
				continue
			}

			after, err := v.confirm(ctx, c, t)
			if err != nil {
				return matches, err
			}
			matches = append(matches, Match{Claim: after, Transfer: t})
		}
	}

	return matches, nil
}

func (v *Validator) confirm(ctx context.Context, before model.Claim, t model.ConfirmedTransfer) (model.Claim, error) {
	now := v.now().UTC()
	after := before
	after.Status = model.StatusConfirmedTrue
	after.ValidationDate = &now
	after.ValidationNotes = Notes(t)
	after.ValidationSourceURL = t.SourceURL

	if err := v.updater.UpdateClaimValidation(ctx, after); err != nil {
		return before, fmt.Errorf("failed to confirm claim %d: %w", before.ID, err)
	}

	v.logger.Info("confirmed claim",
		zap.Int64("claim_id", after.ID),
		zap.String("player", after.PlayerName),
		zap.String("to_club", after.ToClub),
		zap.String("journalist", after.JournalistName),
		zap.String("source", t.Source),
	)

	if v.handler != nil {
		if err := v.handler.OnClaimChanged(ctx, before, after); err != nil {
			return after, fmt.Errorf("failed to rescore after claim %d: %w", after.ID, err)
		}
	}
	return after, nil
}

// SourceBreakdown counts matches per feed
func SourceBreakdown(matches []Match) map[string]int {
	counts := make(map[string]int)
	for _, m := range matches {
		src := m.Transfer.Source
		if src == "" {
			src = "unknown"
		}
		counts[src]++
	}
	return counts
}
