package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JSmilg/veracity/internal/model"
)

// InsertScoreHistory records a score snapshot
func (s *Store) InsertScoreHistory(ctx context.Context, h *model.ScoreHistory) error {
	if h.RecordedAt.IsZero() {
		h.RecordedAt = time.Now().UTC()
	}
	id, err := s.insert(ctx, `
		INSERT INTO score_history (
			journalist_id, truthfulness_score, speed_score, total_claims,
			validated_claims, true_claims, false_claims, original_scoops, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		h.JournalistID,
		h.TruthfulnessScore,
		h.SpeedScore.Round(2),
		h.TotalClaims,
		h.ValidatedClaims,
		h.TrueClaims,
		h.FalseClaims,
		h.OriginalScoops,
		h.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert score history: %w", err)
	}
	h.ID = id
	return nil
}

// ListScoreHistory returns a journalist's snapshots, newest first. A limit of
// zero returns all of them.
func (s *Store) ListScoreHistory(ctx context.Context, journalistID int64, limit int) ([]model.ScoreHistory, error) {
	query := `
		SELECT id, journalist_id, truthfulness_score, speed_score, total_claims,
			validated_claims, true_claims, false_claims, original_scoops, recorded_at
		FROM score_history
		WHERE journalist_id = ?
		ORDER BY recorded_at DESC, id DESC`
	args := []any{journalistID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var out []model.ScoreHistory
	if err := s.selectAll(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list score history for journalist %d: %w", journalistID, err)
	}
	return out, nil
}
