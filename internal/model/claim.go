package model

import (
	"strings"
	"time"
)

// CertaintyTier is the confidence a claim text expresses, from done deal (1) to speculation (6)
type CertaintyTier string

const (
	TierDoneDeal         CertaintyTier = "tier_1_done_deal"
	TierAdvanced         CertaintyTier = "tier_2_advanced"
	TierActive           CertaintyTier = "tier_3_active"
	TierConcreteInterest CertaintyTier = "tier_4_concrete_interest"
	TierEarlyIntent      CertaintyTier = "tier_5_early_intent"
	TierSpeculation      CertaintyTier = "tier_6_speculation"
)

// AllTiers lists the tiers from most to least certain
var AllTiers = []CertaintyTier{
	TierDoneDeal,
	TierAdvanced,
	TierActive,
	TierConcreteInterest,
	TierEarlyIntent,
	TierSpeculation,
}

// Rank returns the numeric tier (1 = most certain, 6 = least). Unknown values rank 0.
func (t CertaintyTier) Rank() int {
	for i, tier := range AllTiers {
		if tier == t {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether t is one of the six known tiers
func (t CertaintyTier) Valid() bool {
	return t.Rank() > 0
}

// ValidationStatus tracks whether a claim has been reconciled against a confirmed transfer
type ValidationStatus string

const (
	StatusPending       ValidationStatus = "pending"
	StatusConfirmedTrue ValidationStatus = "confirmed_true"
	StatusProvenFalse   ValidationStatus = "proven_false"
	StatusPartiallyTrue ValidationStatus = "partially_true"
)

// Valid reports whether s is a known status
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmedTrue, StatusProvenFalse, StatusPartiallyTrue:
		return true
	}
	return false
}

// SourceType distinguishes original reporting from citing somebody else
type SourceType string

const (
	SourceOriginal SourceType = "original"
	SourceCiting   SourceType = "citing"
)

// Claim is a single transfer rumour attributed to a journalist
type Claim struct {
	ID                  int64            `db:"id" json:"id"`
	JournalistID        int64            `db:"journalist_id" json:"journalist_id"`
	JournalistName      string           `db:"journalist_name" json:"journalist_name,omitempty"` // Joined, read-only
	CitedJournalistID   *int64           `db:"cited_journalist_id" json:"cited_journalist_id,omitempty"`
	Text                string           `db:"claim_text" json:"claim_text"`
	Publication         string           `db:"publication" json:"publication,omitempty"`
	ArticleURL          string           `db:"article_url" json:"article_url,omitempty"`
	ClaimDate           time.Time        `db:"claim_date" json:"claim_date"`
	PlayerName          string           `db:"player_name" json:"player_name,omitempty"`
	FromClub            string           `db:"from_club" json:"from_club,omitempty"`
	ToClub              string           `db:"to_club" json:"to_club,omitempty"` // May hold ", "-joined candidates
	TransferFee         string           `db:"transfer_fee" json:"transfer_fee,omitempty"`
	Certainty           CertaintyTier    `db:"certainty_level" json:"certainty_level"`
	IsNegative          bool             `db:"is_transfer_negative" json:"is_transfer_negative"`
	SourceType          SourceType       `db:"source_type" json:"source_type"`
	Status              ValidationStatus `db:"validation_status" json:"validation_status"`
	ValidationDate      *time.Time       `db:"validation_date" json:"validation_date,omitempty"`
	ValidationNotes     string           `db:"validation_notes" json:"validation_notes,omitempty"`
	ValidationSourceURL string           `db:"validation_source_url" json:"validation_source_url,omitempty"`
	IsFirstClaim        bool             `db:"is_first_claim" json:"is_first_claim"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updated_at"`
}

// ToClubCandidates splits a comma-joined to_club into trimmed, non-empty names
func (c Claim) ToClubCandidates() []string {
	return SplitClubs(c.ToClub)
}

// SplitClubs splits a ", "-joined club list
func SplitClubs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Rumour is a claim as extracted from a source, before it is attributed and persisted
type Rumour struct {
	JournalistName  string        `json:"journalist_name"`
	Publication     string        `json:"publication,omitempty"`
	Text            string        `json:"claim_text"`
	PlayerName      string        `json:"player_name,omitempty"`
	FromClub        string        `json:"from_club,omitempty"`
	ToClub          string        `json:"to_club,omitempty"`
	TransferFee     string        `json:"transfer_fee,omitempty"`
	Certainty       CertaintyTier `json:"certainty_level,omitempty"`
	IsNegative      bool          `json:"is_transfer_negative"`
	SourceType      SourceType    `json:"source_type,omitempty"`
	CitedJournalist string        `json:"cited_journalist,omitempty"`
	ArticleURL      string        `json:"article_url,omitempty"`
	ClaimDate       time.Time     `json:"claim_date"`
}
