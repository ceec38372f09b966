package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/model"
)

// ImportSummary reports a reference import
type ImportSummary struct {
	Rows     int `json:"rows"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Flagged  int `json:"flagged,omitempty"` // Managers flagged on existing rows
	Created  int `json:"created,omitempty"` // Manager rows added
}

var referenceDateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "02/01/2006"}

// ImportClubsCSV loads a club export with club_id, club_name, country_name
// and competition_name columns
func (p *Pipeline) ImportClubsCSV(ctx context.Context, r io.Reader, dryRun bool) (ImportSummary, error) {
	rows, err := readCSV(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read clubs: %w", err)
	}

	sum := ImportSummary{Rows: len(rows)}
	var clubs []model.ReferenceClub
	for _, row := range rows {
		name := stripIDSuffix(row["club_name"])
		if name == "" || row["club_id"] == "" {
			sum.Skipped++
			continue
		}
		clubs = append(clubs, model.ReferenceClub{
			ExternalID:  row["club_id"],
			Name:        name,
			Country:     row["country_name"],
			Competition: row["competition_name"],
		})
	}
	if dryRun {
		sum.Imported = len(clubs)
		return sum, nil
	}

	err = p.store.WithTransaction(ctx, func(ctx context.Context) error {
		for _, c := range clubs {
			if err := p.store.UpsertReferenceClub(ctx, c); err != nil {
				return err
			}
			sum.Imported++
		}
		return nil
	})
	if err != nil {
		return sum, err
	}
	p.logger.Info("reference clubs imported", zap.Int("rows", sum.Rows), zap.Int("imported", sum.Imported))
	return sum, nil
}

// ImportPlayersCSV loads a player export. The reference index is rebuilt on
// next use.
func (p *Pipeline) ImportPlayersCSV(ctx context.Context, r io.Reader, dryRun bool) (ImportSummary, error) {
	rows, err := readCSV(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read players: %w", err)
	}

	sum := ImportSummary{Rows: len(rows)}
	var players []model.ReferencePlayer
	for _, row := range rows {
		name := stripIDSuffix(row["player_name"])
		if name == "" || row["player_id"] == "" {
			sum.Skipped++
			continue
		}
		position := row["main_position"]
		if position == "" {
			position = row["position"]
		}
		players = append(players, model.ReferencePlayer{
			ExternalID:         row["player_id"],
			Name:               name,
			CurrentClubName:    stripIDSuffix(row["current_club_name"]),
			OnLoanFromClubName: stripIDSuffix(row["on_loan_from_club_name"]),
			Position:           position,
			DateOfBirth:        parseReferenceDate(row["date_of_birth"]),
			Citizenship:        row["citizenship"],
			ContractExpires:    parseReferenceDate(row["contract_expires"]),
		})
	}
	if dryRun {
		sum.Imported = len(players)
		return sum, nil
	}

	err = p.store.WithTransaction(ctx, func(ctx context.Context) error {
		for _, pl := range players {
			if err := p.store.UpsertReferencePlayer(ctx, pl); err != nil {
				return err
			}
			sum.Imported++
		}
		return nil
	})
	if err != nil {
		return sum, err
	}
	p.reference.Reset()
	p.logger.Info("reference players imported", zap.Int("rows", sum.Rows), zap.Int("imported", sum.Imported))
	return sum, nil
}

type managerExport struct {
	ManagerData []struct {
		Forename string `json:"Forename"`
		Surname  string `json:"Surname"`
	} `json:"ManagerData"`
}

// FlagManagersJSON reads a manager export and flags matching reference
// players as managers, adding a manager row for names not yet known.
// Managers are never offered as player candidates.
func (p *Pipeline) FlagManagersJSON(ctx context.Context, r io.Reader, dryRun bool) (ImportSummary, error) {
	var export managerExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return ImportSummary{}, fmt.Errorf("decode managers: %w", err)
	}

	names := make(map[string]bool)
	var ordered []string
	for _, m := range export.ManagerData {
		forename := strings.TrimSpace(m.Forename)
		surname := titleCase(strings.TrimSpace(m.Surname))
		if forename == "" || surname == "" {
			continue
		}
		name := forename + " " + surname
		if !names[name] {
			names[name] = true
			ordered = append(ordered, name)
		}
	}
	sum := ImportSummary{Rows: len(export.ManagerData), Skipped: len(export.ManagerData) - len(ordered)}
	if dryRun {
		sum.Imported = len(ordered)
		return sum, nil
	}

	existing, err := p.store.ListReferencePlayers(ctx)
	if err != nil {
		return sum, err
	}
	known := make(map[string]bool)

	err = p.store.WithTransaction(ctx, func(ctx context.Context) error {
		for _, pl := range existing {
			if !names[pl.Name] {
				continue
			}
			known[pl.Name] = true
			if pl.IsManager {
				continue
			}
			pl.IsManager = true
			if err := p.store.UpsertReferencePlayer(ctx, pl); err != nil {
				return err
			}
			sum.Flagged++
		}
		for _, name := range ordered {
			if known[name] {
				continue
			}
			if err := p.store.UpsertReferencePlayer(ctx, model.ReferencePlayer{Name: name, IsManager: true}); err != nil {
				return err
			}
			sum.Created++
		}
		return nil
	})
	if err != nil {
		return sum, err
	}
	sum.Imported = sum.Flagged + sum.Created
	p.reference.Reset()
	p.logger.Info("managers flagged", zap.Int("flagged", sum.Flagged), zap.Int("created", sum.Created))
	return sum, nil
}

// readCSV returns the rows of a headed CSV as trimmed column maps
func readCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
}

// stripIDSuffix removes a trailing "(12345)" from exported names
func stripIDSuffix(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "("); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

func parseReferenceDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" || raw == "None" {
		return nil
	}
	for _, layout := range referenceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, so "VAN DIJK" becomes "Van Dijk" and "o'neil" becomes "O'Neil"
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
