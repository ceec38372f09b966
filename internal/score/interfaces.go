package score

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/model"
)

type Store interface {
	ListJournalists(ctx context.Context) ([]model.Journalist, error)
	GetJournalist(ctx context.Context, id int64) (*model.Journalist, error)
	// ListScoringClaims returns every claim that names a player
	ListScoringClaims(ctx context.Context) ([]model.Claim, error)
	ListJournalistClaims(ctx context.Context, journalistID int64) ([]model.Claim, error)
	// ListClubClaims returns claims whose from or to club contains club, case-insensitively
	ListClubClaims(ctx context.Context, club string) ([]model.Claim, error)
	UpdateJournalistScores(ctx context.Context, id int64, truthfulness, speed decimal.Decimal) error
	InsertScoreHistory(ctx context.Context, h *model.ScoreHistory) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}
