package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journalist is a reporter whose claims are tracked and scored
type Journalist struct {
	ID                int64           `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Slug              string          `db:"slug" json:"slug"`
	Publications      StringList      `db:"publications" json:"publications"`
	TwitterHandle     string          `db:"twitter_handle" json:"twitter_handle,omitempty"`
	TruthfulnessScore decimal.Decimal `db:"truthfulness_score" json:"truthfulness_score"` // Count of confirmed claims
	SpeedScore        decimal.Decimal `db:"speed_score" json:"speed_score"`               // 0-100, two decimals
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// HasPublication reports whether the journalist already lists pub
func (j Journalist) HasPublication(pub string) bool {
	for _, p := range j.Publications {
		if p == pub {
			return true
		}
	}
	return false
}

// ScoreHistory is a snapshot written every time a journalist's scores are recomputed
type ScoreHistory struct {
	ID                int64           `db:"id" json:"id"`
	JournalistID      int64           `db:"journalist_id" json:"journalist_id"`
	TruthfulnessScore decimal.Decimal `db:"truthfulness_score" json:"truthfulness_score"`
	SpeedScore        decimal.Decimal `db:"speed_score" json:"speed_score"`
	TotalClaims       int             `db:"total_claims" json:"total_claims"`
	ValidatedClaims   int             `db:"validated_claims" json:"validated_claims"`
	TrueClaims        int             `db:"true_claims" json:"true_claims"`
	FalseClaims       int             `db:"false_claims" json:"false_claims"`
	OriginalScoops    int             `db:"original_scoops" json:"original_scoops"`
	RecordedAt        time.Time       `db:"recorded_at" json:"recorded_at"`
}

// JournalistStats summarises a journalist's claim record
type JournalistStats struct {
	TotalClaims         int             `json:"total_claims"`
	ValidatedClaims     int             `json:"validated_claims"`
	PendingClaims       int             `json:"pending_claims"`
	TrueClaims          int             `json:"true_claims"`
	FalseClaims         int             `json:"false_claims"`
	PartiallyTrueClaims int             `json:"partially_true_claims"`
	OriginalScoops      int             `json:"original_scoops"`
	FirstToReport       int             `json:"first_to_report"`
	TruthfulnessScore   decimal.Decimal `json:"truthfulness_score"`
	SpeedScore          decimal.Decimal `json:"speed_score"`
}

// ClubJournalistStats is a journalist's record restricted to claims about one club
type ClubJournalistStats struct {
	JournalistID   int64           `json:"journalist_id"`
	JournalistName string          `json:"journalist_name"`
	Slug           string          `json:"slug"`
	TotalClaims    int             `json:"total_claims"`
	TrueClaims     int             `json:"true_claims"`
	FalseClaims    int             `json:"false_claims"`
	PendingClaims  int             `json:"pending_claims"`
	Accuracy       decimal.Decimal `json:"accuracy"` // Percent of claims confirmed
	Speed          decimal.Decimal `json:"speed"`
}
