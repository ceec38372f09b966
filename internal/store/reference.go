package store

import (
	"context"
	"fmt"

	"github.com/JSmilg/veracity/internal/model"
)

// UpsertReferenceClub inserts or updates a club keyed by name
func (s *Store) UpsertReferenceClub(ctx context.Context, c model.ReferenceClub) error {
	_, err := s.exec(ctx, `
		INSERT INTO reference_clubs (external_id, name, country, competition)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			external_id = EXCLUDED.external_id,
			country = EXCLUDED.country,
			competition = EXCLUDED.competition`,
		c.ExternalID, c.Name, c.Country, c.Competition,
	)
	if err != nil {
		return fmt.Errorf("upsert reference club %q: %w", c.Name, err)
	}
	return nil
}

// UpsertReferencePlayer inserts or updates a player keyed by name and current club
func (s *Store) UpsertReferencePlayer(ctx context.Context, p model.ReferencePlayer) error {
	_, err := s.exec(ctx, `
		INSERT INTO reference_players (
			external_id, name, current_club_name, on_loan_from_club_name, position,
			date_of_birth, citizenship, contract_expires, is_manager
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name, current_club_name) DO UPDATE SET
			external_id = EXCLUDED.external_id,
			on_loan_from_club_name = EXCLUDED.on_loan_from_club_name,
			position = EXCLUDED.position,
			date_of_birth = EXCLUDED.date_of_birth,
			citizenship = EXCLUDED.citizenship,
			contract_expires = EXCLUDED.contract_expires,
			is_manager = EXCLUDED.is_manager`,
		p.ExternalID,
		p.Name,
		p.CurrentClubName,
		p.OnLoanFromClubName,
		p.Position,
		utcPtr(p.DateOfBirth),
		p.Citizenship,
		utcPtr(p.ContractExpires),
		p.IsManager,
	)
	if err != nil {
		return fmt.Errorf("upsert reference player %q: %w", p.Name, err)
	}
	return nil
}

// ListReferencePlayers returns every reference player, managers included
func (s *Store) ListReferencePlayers(ctx context.Context) ([]model.ReferencePlayer, error) {
	var out []model.ReferencePlayer
	err := s.selectAll(ctx, &out, `
		SELECT id, external_id, name, current_club_name, on_loan_from_club_name,
			position, date_of_birth, citizenship, contract_expires, is_manager
		FROM reference_players
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list reference players: %w", err)
	}
	return out, nil
}

// ListReferenceClubs returns every reference club
func (s *Store) ListReferenceClubs(ctx context.Context) ([]model.ReferenceClub, error) {
	var out []model.ReferenceClub
	err := s.selectAll(ctx, &out, `
		SELECT id, external_id, name, country, competition
		FROM reference_clubs
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list reference clubs: %w", err)
	}
	return out, nil
}
