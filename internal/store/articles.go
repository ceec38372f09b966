package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JSmilg/veracity/internal/model"
)

// ArticleSeen reports whether url has already been scraped
func (s *Store) ArticleSeen(ctx context.Context, url string) (bool, error) {
	var n int
	if err := s.get(ctx, &n, `SELECT COUNT(*) FROM scraped_articles WHERE url = ?`, url); err != nil {
		return false, fmt.Errorf("check article %s: %w", url, err)
	}
	return n > 0, nil
}

// InsertArticle records a scraped page. It returns false without error when
// the URL is already recorded.
func (s *Store) InsertArticle(ctx context.Context, a *model.ScrapedArticle) (bool, error) {
	if a.ScrapedAt.IsZero() {
		a.ScrapedAt = time.Now().UTC()
	}
	res, err := s.exec(ctx, `
		INSERT INTO scraped_articles (
			url, source_type, source_name, title, raw_content, processed,
			claims_created, processing_error, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING`,
		a.URL,
		a.SourceType,
		a.SourceName,
		a.Title,
		a.RawContent,
		a.Processed,
		a.ClaimsCreated,
		a.ProcessingError,
		a.ScrapedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert article %s: %w", a.URL, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert article %s: %w", a.URL, err)
	}
	return n > 0, nil
}

// MarkArticleProcessed records how processing a scraped page went
func (s *Store) MarkArticleProcessed(ctx context.Context, url string, claimsCreated int, procErr error) error {
	msg := ""
	if procErr != nil {
		msg = procErr.Error()
	}
	err := expectRow(s.exec(ctx, `
		UPDATE scraped_articles SET processed = ?, claims_created = ?, processing_error = ?
		WHERE url = ?`,
		true, claimsCreated, msg, url,
	))
	if err != nil {
		return fmt.Errorf("mark article %s processed: %w", url, err)
	}
	return nil
}

// GetArticle loads a scraped page by URL
func (s *Store) GetArticle(ctx context.Context, url string) (*model.ScrapedArticle, error) {
	var a model.ScrapedArticle
	err := s.get(ctx, &a, `
		SELECT id, url, source_type, source_name, title, raw_content, processed,
			claims_created, processing_error, scraped_at
		FROM scraped_articles WHERE url = ?`, url)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", url, err)
	}
	return &a, nil
}
