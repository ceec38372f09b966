package extract

import (
	"context"
	"strings"
)

// Entities is what the extractors find in one piece of claim text
type Entities struct {
	Players     []string
	PlayerName  string // First candidate, canonicalised when the reference index knows it
	Clubs       []string
	Fee         string
	CurrentClub string // Reference current club of the first resolved player
}

// Extractor combines the pattern extractors with the optional reference index
type Extractor struct {
	ref *ReferenceIndex
}

// NewExtractor creates an extractor. ref may be nil.
func NewExtractor(ref *ReferenceIndex) *Extractor {
	return &Extractor{ref: ref}
}

// Extract runs the player, club and fee extractors over text
func (e *Extractor) Extract(ctx context.Context, text string) Entities {
	ent := Entities{
		Players: Players(text),
		Clubs:   Clubs(text),
		Fee:     Fee(text),
	}

	if e.ref != nil {
		if len(ent.Players) == 0 {
			ent.Players = e.ref.FindInText(ctx, text)
		}
		for i, name := range ent.Players {
			p, ok := e.ref.Resolve(ctx, name)
			if !ok {
				continue
			}
			ent.Players[i] = p.Name
			if ent.CurrentClub == "" && p.CurrentClubName != "" {
				ent.CurrentClub = p.CurrentClubName
			}
		}
	}

	if len(ent.Players) > 0 {
		ent.PlayerName = ent.Players[0]
	}
	return ent
}

// BackfillFrom returns the reference current club as a seller when direction
// classification found none, unless that club is already a destination
func BackfillFrom(from, to, currentClub string) string {
	if from != "" || currentClub == "" {
		return from
	}
	if strings.Contains(strings.ToLower(to), strings.ToLower(currentClub)) {
		return from
	}
	return currentClub
}
