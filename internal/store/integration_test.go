//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/dedup"
	"github.com/JSmilg/veracity/internal/model"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	store     *Store
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("veracity_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	st, err := Open(s.ctx, model.DatabaseConfig{Driver: "postgres", DSN: connStr}, zap.NewNop())
	s.Require().NoError(err)
	s.store = st
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	for _, table := range []string{"score_history", "claims", "journalists", "reference_players", "reference_clubs", "scraped_articles"} {
		_, _ = s.store.DB().ExecContext(s.ctx, "DELETE FROM "+table)
	}
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestClaimLifecycle() {
	j, created, err := s.store.GetOrCreateJournalist(s.ctx, model.Journalist{Name: "Fabrizio Romano"})
	s.Require().NoError(err)
	s.True(created)

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &model.Claim{
		JournalistID: j.ID,
		Text:         "Jarrod Bowen to Liverpool, here we go",
		PlayerName:   "Jarrod Bowen",
		FromClub:     "West Ham United",
		ToClub:       "Liverpool",
		ClaimDate:    now.AddDate(0, 0, -3),
		Certainty:    model.TierDoneDeal,
	}
	s.Require().NoError(s.store.InsertClaim(s.ctx, c))

	recent, err := s.store.FindRecentClaims(s.ctx, dedup.Query{
		JournalistName: "FABRIZIO ROMANO",
		PlayerName:     "jarrod bowen",
		Since:          now.AddDate(0, 0, -30),
	})
	s.Require().NoError(err)
	s.Require().Len(recent, 1)

	c.Status = model.StatusConfirmedTrue
	c.ValidationDate = &now
	s.Require().NoError(s.store.UpdateClaimValidation(s.ctx, *c))

	pending, err := s.store.ListPendingClaims(s.ctx, now.AddDate(0, 0, -90))
	s.Require().NoError(err)
	s.Empty(pending)

	byID, err := s.store.ListClaims(s.ctx, []int64{c.ID})
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Equal(model.StatusConfirmedTrue, byID[0].Status)
	s.Equal("Fabrizio Romano", byID[0].JournalistName)
}

func (s *PostgresIntegrationSuite) TestScores() {
	j, _, err := s.store.GetOrCreateJournalist(s.ctx, model.Journalist{Name: "David Ornstein"})
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdateJournalistScores(s.ctx, j.ID, decimal.NewFromInt(4), decimal.RequireFromString("83.333")))
	s.Require().NoError(s.store.InsertScoreHistory(s.ctx, &model.ScoreHistory{
		JournalistID:      j.ID,
		TruthfulnessScore: decimal.NewFromInt(4),
		SpeedScore:        decimal.RequireFromString("83.33"),
	}))

	got, err := s.store.GetJournalist(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal("83.33", got.SpeedScore.StringFixed(2))

	history, err := s.store.ListScoreHistory(s.ctx, j.ID, 1)
	s.Require().NoError(err)
	s.Require().Len(history, 1)

	_, err = s.store.GetJournalist(s.ctx, j.ID+1000)
	s.True(errors.Is(err, ErrNotFound))
}

func (s *PostgresIntegrationSuite) TestArticleDedup() {
	a := &model.ScrapedArticle{URL: "https://www.bbc.com/sport/football/articles/x", SourceType: "web"}

	inserted, err := s.store.InsertArticle(s.ctx, a)
	s.Require().NoError(err)
	s.True(inserted)

	inserted, err = s.store.InsertArticle(s.ctx, a)
	s.Require().NoError(err)
	s.False(inserted)
}
