package model

import "time"

// ConfirmedTransfer is a completed move reported by an external feed
type ConfirmedTransfer struct {
	PlayerName   string     `json:"player_name"`
	FromClub     string     `json:"from_club"`
	ToClub       string     `json:"to_club"`
	Fee          string     `json:"fee,omitempty"`
	TransferDate *time.Time `json:"transfer_date,omitempty"` // Nil when the feed gave no usable date
	RawDate      string     `json:"raw_date,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	Source       string     `json:"source"` // Feed name
}

// ReferencePlayer is a known player record used to resolve and enrich names
type ReferencePlayer struct {
	ID                 int64      `db:"id" json:"id"`
	ExternalID         string     `db:"external_id" json:"external_id,omitempty"`
	Name               string     `db:"name" json:"name"`
	CurrentClubName    string     `db:"current_club_name" json:"current_club_name,omitempty"`
	OnLoanFromClubName string     `db:"on_loan_from_club_name" json:"on_loan_from_club_name,omitempty"`
	Position           string     `db:"position" json:"position,omitempty"`
	DateOfBirth        *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Citizenship        string     `db:"citizenship" json:"citizenship,omitempty"`
	ContractExpires    *time.Time `db:"contract_expires" json:"contract_expires,omitempty"`
	IsManager          bool       `db:"is_manager" json:"is_manager"`
}

// ReferenceClub is a known club record
type ReferenceClub struct {
	ID          int64  `db:"id" json:"id"`
	ExternalID  string `db:"external_id" json:"external_id,omitempty"`
	Name        string `db:"name" json:"name"`
	Country     string `db:"country" json:"country,omitempty"`
	Competition string `db:"competition" json:"competition,omitempty"`
}

// ScrapedArticle records a fetched source page so it is processed once
type ScrapedArticle struct {
	ID              int64     `db:"id" json:"id"`
	URL             string    `db:"url" json:"url"`
	SourceType      string    `db:"source_type" json:"source_type"` // rss, web, reddit
	SourceName      string    `db:"source_name" json:"source_name"`
	Title           string    `db:"title" json:"title,omitempty"`
	RawContent      string    `db:"raw_content" json:"-"`
	Processed       bool      `db:"processed" json:"processed"`
	ClaimsCreated   int       `db:"claims_created" json:"claims_created"`
	ProcessingError string    `db:"processing_error" json:"processing_error,omitempty"`
	ScrapedAt       time.Time `db:"scraped_at" json:"scraped_at"`
}
