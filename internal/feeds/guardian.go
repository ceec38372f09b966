package feeds

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JSmilg/veracity/internal/model"
)

// GuardianPageURL is the public page of the transfer window interactive,
// cited as the validation source for its transfers
const GuardianPageURL = "https://www.theguardian.com/football/ng-interactive/2026/feb/03/mens-transfer-window-january-2026-all-deals-europe-top-five-leagues-full-list"

// Guardian reads the JSON behind the Guardian's transfer window interactive
type Guardian struct {
	fetcher Fetcher
	url     string
}

// NewGuardian creates the feed for one window's JSON document
func NewGuardian(f Fetcher, url string) *Guardian {
	return &Guardian{fetcher: f, url: url}
}

func (g *Guardian) Name() string { return SourceGuardian }

type guardianDocument struct {
	Sheets struct {
		Transfers []guardianRow `json:"transfers"`
	} `json:"sheets"`
}

type guardianRow struct {
	Player       string `json:"Player name"`
	TransferType string `json:"Transfer type"`
	FromClub     string `json:"What was the previous club?"`
	ToClub       string `json:"What is the new club?"`
	Price        string `json:"Price"`
	Date         string `json:"On what date was the transfer announced?"`
}

// Transfers fetches and converts the window's rows
func (g *Guardian) Transfers(ctx context.Context) ([]model.ConfirmedTransfer, error) {
	var doc guardianDocument
	if err := g.fetcher.FetchJSON(ctx, g.url, &doc); err != nil {
		return nil, fmt.Errorf("guardian window: %w", err)
	}
	return guardianTransfers(doc.Sheets.Transfers), nil
}

// guardianTransfers skips rows without a player and loans that ended or
// were extended, which are not new moves
func guardianTransfers(rows []guardianRow) []model.ConfirmedTransfer {
	var out []model.ConfirmedTransfer
	for _, r := range rows {
		name := strings.TrimSpace(r.Player)
		if name == "" {
			continue
		}
		kind := strings.TrimSpace(r.TransferType)
		if kind == "Loan ended" || kind == "Loan extended" {
			continue
		}

		out = append(out, model.ConfirmedTransfer{
			PlayerName:   name,
			FromClub:     strings.TrimSpace(r.FromClub),
			ToClub:       strings.TrimSpace(r.ToClub),
			Fee:          GuardianFee(strings.TrimSpace(r.Price), kind),
			TransferDate: parseGuardianDate(r.Date),
			RawDate:      strings.TrimSpace(r.Date),
			SourceURL:    GuardianPageURL,
			Source:       SourceGuardian,
		})
	}
	return out
}

func parseGuardianDate(raw string) *time.Time {
	t, err := time.Parse("02-01-2006", strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &t
}

// GuardianFee turns a raw price in pounds and a transfer type into the
// fee form used on claims: "Loan", "Free", "Undisclosed", "£42.5m", "£750k"
func GuardianFee(price, transferType string) string {
	switch strings.TrimSpace(transferType) {
	case "Loan":
		return "Loan"
	case "Free", "Released":
		return "Free"
	case "Loan ended":
		return "Loan ended"
	case "Loan extended":
		return "Loan extended"
	case "Undisclosed fee":
		return "Undisclosed"
	}

	if price == "" {
		return strings.TrimSpace(transferType)
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(price, ",", ""), 64)
	if err != nil {
		return price
	}
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("£%.1fm", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("£%.0fk", amount/1_000)
	default:
		return fmt.Sprintf("£%.0f", amount)
	}
}
