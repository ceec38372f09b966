package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/JSmilg/veracity/internal/dedup"
	"github.com/JSmilg/veracity/internal/model"
)

const claimSelect = `
	SELECT c.id, c.journalist_id, COALESCE(j.name, '') AS journalist_name,
		c.cited_journalist_id, c.claim_text, c.publication, c.article_url,
		c.claim_date, c.player_name, c.from_club, c.to_club, c.transfer_fee,
		c.certainty_level, c.is_transfer_negative, c.source_type,
		c.validation_status, c.validation_date, c.validation_notes,
		c.validation_source_url, c.is_first_claim, c.created_at, c.updated_at
	FROM claims c
	LEFT JOIN journalists j ON j.id = c.journalist_id`

// InsertClaim stores a new claim and fills in its ID and timestamps
func (s *Store) InsertClaim(ctx context.Context, c *model.Claim) error {
	now := time.Now().UTC()
	if c.Status == "" {
		c.Status = model.StatusPending
	}
	if c.SourceType == "" {
		c.SourceType = model.SourceOriginal
	}
	if c.Certainty == "" {
		c.Certainty = model.TierSpeculation
	}
	if c.ClaimDate.IsZero() {
		c.ClaimDate = now
	}
	if c.IsNegative {
		c.ToClub = ""
	}

	query := `
		INSERT INTO claims (
			journalist_id, cited_journalist_id, claim_text, publication, article_url,
			claim_date, player_name, from_club, to_club, transfer_fee,
			certainty_level, is_transfer_negative, source_type, validation_status,
			validation_date, validation_notes, validation_source_url, is_first_claim,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	id, err := s.insert(ctx, query,
		c.JournalistID,
		c.CitedJournalistID,
		c.Text,
		c.Publication,
		c.ArticleURL,
		c.ClaimDate.UTC(),
		c.PlayerName,
		c.FromClub,
		c.ToClub,
		c.TransferFee,
		c.Certainty,
		c.IsNegative,
		c.SourceType,
		c.Status,
		utcPtr(c.ValidationDate),
		c.ValidationNotes,
		c.ValidationSourceURL,
		c.IsFirstClaim,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// GetClaim loads one claim
func (s *Store) GetClaim(ctx context.Context, id int64) (*model.Claim, error) {
	var c model.Claim
	if err := s.get(ctx, &c, claimSelect+` WHERE c.id = ?`, id); err != nil {
		return nil, fmt.Errorf("get claim %d: %w", id, err)
	}
	return &c, nil
}

// ListClaims returns all claims, or only the given IDs when ids is non-empty,
// ordered by ID
func (s *Store) ListClaims(ctx context.Context, ids []int64) ([]model.Claim, error) {
	var claims []model.Claim
	if len(ids) == 0 {
		if err := s.selectAll(ctx, &claims, claimSelect+` ORDER BY c.id`); err != nil {
			return nil, fmt.Errorf("list claims: %w", err)
		}
		return claims, nil
	}

	var (
		query string
		args  []any
	)
	if s.driver == DriverPostgres {
		query = claimSelect + ` WHERE c.id = ANY(?) ORDER BY c.id`
		args = []any{pq.Array(ids)}
	} else {
		var err error
		query, args, err = sqlx.In(claimSelect+` WHERE c.id IN (?) ORDER BY c.id`, ids)
		if err != nil {
			return nil, fmt.Errorf("expand claim ids: %w", err)
		}
	}

	if err := s.selectAll(ctx, &claims, query, args...); err != nil {
		return nil, fmt.Errorf("list claims by id: %w", err)
	}
	return claims, nil
}

// ListPendingClaims returns pending claims dated on or after since, oldest first
func (s *Store) ListPendingClaims(ctx context.Context, since time.Time) ([]model.Claim, error) {
	var claims []model.Claim
	err := s.selectAll(ctx, &claims,
		claimSelect+` WHERE c.validation_status = ? AND c.claim_date >= ? ORDER BY c.claim_date, c.id`,
		model.StatusPending, since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list pending claims: %w", err)
	}
	return claims, nil
}

// FindRecentClaims returns claims dated on or after q.Since that match every
// non-empty field of q case-insensitively
func (s *Store) FindRecentClaims(ctx context.Context, q dedup.Query) ([]model.Claim, error) {
	where := []string{"c.claim_date >= ?"}
	args := []any{q.Since.UTC()}

	add := func(column, value string) {
		if value == "" {
			return
		}
		where = append(where, "LOWER("+column+") = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(value)))
	}
	add("j.name", q.JournalistName)
	add("c.player_name", q.PlayerName)
	add("c.from_club", q.FromClub)
	add("c.to_club", q.ToClub)

	var claims []model.Claim
	query := claimSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY c.claim_date DESC, c.id DESC`
	if err := s.selectAll(ctx, &claims, query, args...); err != nil {
		return nil, fmt.Errorf("find recent claims: %w", err)
	}
	return claims, nil
}

// UpdateClaimValidation writes the validation fields and first-to-report flag
func (s *Store) UpdateClaimValidation(ctx context.Context, c model.Claim) error {
	err := expectRow(s.exec(ctx, `
		UPDATE claims SET
			validation_status = ?,
			validation_date = ?,
			validation_notes = ?,
			validation_source_url = ?,
			is_first_claim = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Status,
		utcPtr(c.ValidationDate),
		c.ValidationNotes,
		c.ValidationSourceURL,
		c.IsFirstClaim,
		time.Now().UTC(),
		c.ID,
	))
	if err != nil {
		return fmt.Errorf("update claim %d validation: %w", c.ID, err)
	}
	return nil
}

// UpdateClaimExtraction writes the extracted fields. A negative claim never
// keeps a destination club.
func (s *Store) UpdateClaimExtraction(ctx context.Context, c model.Claim) error {
	toClub := c.ToClub
	if c.IsNegative {
		toClub = ""
	}
	err := expectRow(s.exec(ctx, `
		UPDATE claims SET
			player_name = ?,
			from_club = ?,
			to_club = ?,
			transfer_fee = ?,
			certainty_level = ?,
			is_transfer_negative = ?,
			updated_at = ?
		WHERE id = ?`,
		c.PlayerName,
		c.FromClub,
		toClub,
		c.TransferFee,
		c.Certainty,
		c.IsNegative,
		time.Now().UTC(),
		c.ID,
	))
	if err != nil {
		return fmt.Errorf("update claim %d extraction: %w", c.ID, err)
	}
	return nil
}

// ListScoringClaims returns every claim naming a player
func (s *Store) ListScoringClaims(ctx context.Context) ([]model.Claim, error) {
	var claims []model.Claim
	if err := s.selectAll(ctx, &claims, claimSelect+` WHERE c.player_name <> '' ORDER BY c.claim_date, c.id`); err != nil {
		return nil, fmt.Errorf("list scoring claims: %w", err)
	}
	return claims, nil
}

// ListJournalistClaims returns a journalist's claims, newest first
func (s *Store) ListJournalistClaims(ctx context.Context, journalistID int64) ([]model.Claim, error) {
	var claims []model.Claim
	err := s.selectAll(ctx, &claims,
		claimSelect+` WHERE c.journalist_id = ? ORDER BY c.claim_date DESC, c.id DESC`,
		journalistID,
	)
	if err != nil {
		return nil, fmt.Errorf("list claims for journalist %d: %w", journalistID, err)
	}
	return claims, nil
}

// ListClubClaims returns claims whose from or to club contains club
func (s *Store) ListClubClaims(ctx context.Context, club string) ([]model.Claim, error) {
	pattern := containsPattern(club)
	var claims []model.Claim
	err := s.selectAll(ctx, &claims,
		claimSelect+` WHERE LOWER(c.to_club) LIKE ? OR LOWER(c.from_club) LIKE ? ORDER BY c.claim_date, c.id`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("list claims for club %q: %w", club, err)
	}
	return claims, nil
}

// CountClaims counts claims by validation status
func (s *Store) CountClaims(ctx context.Context) (map[model.ValidationStatus]int, error) {
	var rows []struct {
		Status model.ValidationStatus `db:"validation_status"`
		N      int                    `db:"n"`
	}
	if err := s.selectAll(ctx, &rows, `SELECT validation_status, COUNT(*) AS n FROM claims GROUP BY validation_status`); err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}
	out := make(map[model.ValidationStatus]int, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
