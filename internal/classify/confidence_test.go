package classify

import (
	"testing"

	"github.com/JSmilg/veracity/internal/model"
)

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.CertaintyTier
	}{
		{"here we go", "Here we go! Declan Rice to Arsenal, done deal.", model.TierDoneDeal},
		{"agreed a fee", "Arsenal have agreed a fee with West Ham to sign Declan Rice. Deal worth £105m.", model.TierDoneDeal},
		{"advanced talks", "Chelsea are in advanced talks with Napoli", model.TierActive},
		{"concrete interest", "Liverpool are keen on the striker", model.TierConcreteInterest},
		{"early intent", "Barcelona are eyeing a move for the defender", model.TierEarlyIntent},
		{"permanent regex", "The club will make his loan permanent in the summer", model.TierAdvanced},
		{"empty text", "", model.TierSpeculation},
		{"no signal", "Football is a game of two halves", model.TierSpeculation},
		{"case insensitive", "DONE DEAL for Mbeumo", model.TierDoneDeal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyConfidence(tt.text); got != tt.want {
				t.Errorf("ClassifyConfidence(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyConfidence_LeastCertainTierWins(t *testing.T) {
	text := "Here we go soon, Arsenal have been linked with Rice for months"

	got := ClassifyConfidence(text)
	if got != model.TierSpeculation {
		t.Errorf("Expected mixed-tier text to resolve to %s, got %s", model.TierSpeculation, got)
	}
}

func TestClassifyConfidence_PhraseBlocksOwnTierRegexOnly(t *testing.T) {
	// "decided to make" is an advanced phrase and the done-deal regex also
	// matches; the less certain of the two wins.
	got := ClassifyConfidence("Juventus decided to make the loan permanent")
	if got != model.TierAdvanced {
		t.Errorf("Expected %s, got %s", model.TierAdvanced, got)
	}
}

func TestTierPhrases_LongestFirst(t *testing.T) {
	for _, tier := range model.AllTiers {
		phrases := TierPhrases(tier)
		if len(phrases) == 0 {
			t.Errorf("Expected phrases for %s", tier)
			continue
		}
		for i := 1; i < len(phrases); i++ {
			if len(phrases[i]) > len(phrases[i-1]) {
				t.Errorf("%s: phrase %q is longer than its predecessor %q", tier, phrases[i], phrases[i-1])
			}
		}
	}
}
