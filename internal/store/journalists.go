package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/model"
)

const journalistSelect = `
	SELECT id, name, slug, publications, twitter_handle, truthfulness_score,
		speed_score, created_at, updated_at
	FROM journalists`

// Slugify lower-cases name and joins its letters and digits with hyphens
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GetJournalist loads a journalist by ID
func (s *Store) GetJournalist(ctx context.Context, id int64) (*model.Journalist, error) {
	var j model.Journalist
	if err := s.get(ctx, &j, journalistSelect+` WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get journalist %d: %w", id, err)
	}
	return &j, nil
}

// GetJournalistBySlug loads a journalist by slug
func (s *Store) GetJournalistBySlug(ctx context.Context, slug string) (*model.Journalist, error) {
	var j model.Journalist
	if err := s.get(ctx, &j, journalistSelect+` WHERE slug = ?`, slug); err != nil {
		return nil, fmt.Errorf("get journalist %q: %w", slug, err)
	}
	return &j, nil
}

// GetJournalistByName loads a journalist by exact name
func (s *Store) GetJournalistByName(ctx context.Context, name string) (*model.Journalist, error) {
	var j model.Journalist
	if err := s.get(ctx, &j, journalistSelect+` WHERE name = ?`, name); err != nil {
		return nil, fmt.Errorf("get journalist %q: %w", name, err)
	}
	return &j, nil
}

// ListJournalists returns journalists ordered by truthfulness, then speed
func (s *Store) ListJournalists(ctx context.Context) ([]model.Journalist, error) {
	var out []model.Journalist
	// Scores are TEXT in SQLite, so order in Go
	if err := s.selectAll(ctx, &out, journalistSelect+` ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list journalists: %w", err)
	}
	sortJournalists(out)
	return out, nil
}

func sortJournalists(js []model.Journalist) {
	sort.SliceStable(js, func(i, k int) bool {
		if c := js[i].TruthfulnessScore.Cmp(js[k].TruthfulnessScore); c != 0 {
			return c > 0
		}
		return js[i].SpeedScore.Cmp(js[k].SpeedScore) > 0
	})
}

// GetOrCreateJournalist returns the journalist with j.Name, creating it with
// a unique slug when missing. created reports whether a row was inserted.
func (s *Store) GetOrCreateJournalist(ctx context.Context, j model.Journalist) (*model.Journalist, bool, error) {
	var (
		out     *model.Journalist
		created bool
	)

	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.GetJournalistByName(ctx, j.Name)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		slug, err := s.uniqueSlug(ctx, Slugify(j.Name))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		j.Slug = slug
		j.TruthfulnessScore = decimal.Zero
		j.SpeedScore = decimal.Zero
		j.CreatedAt = now
		j.UpdatedAt = now
		if j.Publications == nil {
			j.Publications = model.StringList{}
		}

		id, err := s.insert(ctx, `
			INSERT INTO journalists (
				name, slug, publications, twitter_handle, truthfulness_score,
				speed_score, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			j.Name, j.Slug, j.Publications, j.TwitterHandle,
			j.TruthfulnessScore, j.SpeedScore, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert journalist: %w", err)
		}
		j.ID = id
		out = &j
		created = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("get or create journalist %q: %w", j.Name, err)
	}

	if created {
		s.logger.Info("journalist created", zap.String("name", out.Name), zap.String("slug", out.Slug))
	}
	return out, created, nil
}

func (s *Store) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "journalist"
	}
	slug := base
	for i := 1; ; i++ {
		var n int
		if err := s.get(ctx, &n, `SELECT COUNT(*) FROM journalists WHERE slug = ?`, slug); err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if n == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// AddJournalistPublication appends pub to the journalist's publications if it
// is not already listed
func (s *Store) AddJournalistPublication(ctx context.Context, id int64, pub string) error {
	pub = strings.TrimSpace(pub)
	if pub == "" {
		return nil
	}
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		j, err := s.GetJournalist(ctx, id)
		if err != nil {
			return err
		}
		if j.HasPublication(pub) {
			return nil
		}
		pubs := append(j.Publications, pub)
		_, err = s.exec(ctx, `UPDATE journalists SET publications = ?, updated_at = ? WHERE id = ?`,
			pubs, time.Now().UTC(), id)
		if err != nil {
			return fmt.Errorf("update publications for journalist %d: %w", id, err)
		}
		return nil
	})
}

// SetTwitterHandle sets the handle if the journalist has none
func (s *Store) SetTwitterHandle(ctx context.Context, id int64, handle string) error {
	_, err := s.exec(ctx,
		`UPDATE journalists SET twitter_handle = ?, updated_at = ? WHERE id = ? AND twitter_handle = ''`,
		handle, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set twitter handle for journalist %d: %w", id, err)
	}
	return nil
}

// UpdateJournalistScores stores recomputed scores
func (s *Store) UpdateJournalistScores(ctx context.Context, id int64, truthfulness, speed decimal.Decimal) error {
	err := expectRow(s.exec(ctx,
		`UPDATE journalists SET truthfulness_score = ?, speed_score = ?, updated_at = ? WHERE id = ?`,
		truthfulness, speed.Round(2), time.Now().UTC(), id,
	))
	if err != nil {
		return fmt.Errorf("update scores for journalist %d: %w", id, err)
	}
	return nil
}
