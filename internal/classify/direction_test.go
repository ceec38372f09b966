package classify

import (
	"strings"
	"testing"
)

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		clubs    []string
		wantFrom string
		wantTo   string
	}{
		{
			name:  "no clubs",
			text:  "Arsenal want to sign Rice",
			clubs: nil,
		},
		{
			name:     "single club selling after",
			text:     "Newcastle prepared to sell Alexander Isak for the right price",
			clubs:    []string{"Newcastle"},
			wantFrom: "Newcastle",
		},
		{
			name:     "single club leaving",
			text:     "Isak wants to leave Newcastle this summer",
			clubs:    []string{"Newcastle"},
			wantFrom: "Newcastle",
		},
		{
			name:   "single club defaults to buyer",
			text:   "Arsenal are interested in Alexander Isak",
			clubs:  []string{"Arsenal"},
			wantTo: "Arsenal",
		},
		{
			name:     "positional fallback",
			text:     "Arsenal have agreed a fee with West Ham to sign Declan Rice. Deal worth £105m.",
			clubs:    []string{"Arsenal", "West Ham United"},
			wantFrom: "West Ham United",
			wantTo:   "Arsenal",
		},
		{
			name:     "possessive marks current club",
			text:     "Juventus are keen on Chelsea's 23-year-old winger",
			clubs:    []string{"Juventus", "Chelsea"},
			wantFrom: "Chelsea",
			wantTo:   "Juventus",
		},
		{
			name:   "both clubs buying",
			text:   "PSG and Real Madrid have joined the race for Erling Haaland",
			clubs:  []string{"PSG", "Real Madrid"},
			wantTo: "PSG, Real Madrid",
		},
		{
			name:   "conjunction inherits score",
			text:   "Bid from Arsenal and Chelsea for Declan Rice",
			clubs:  []string{"Arsenal", "Chelsea"},
			wantTo: "Arsenal, Chelsea",
		},
		{
			name:     "new contract offer marks the current club",
			text:     "Manchester City are planning to offer Phil Foden a new and improved long-term deal worth far more than his current wages, amid interest from Real Madrid",
			clubs:    []string{"Manchester City", "Real Madrid"},
			wantFrom: "Manchester City",
			wantTo:   "Real Madrid",
		},
		{
			name:     "leaving language before the club",
			text:     "Arsenal are keen on Bruno Guimaraes, who is set to leave Newcastle",
			clubs:    []string{"Arsenal", "Newcastle"},
			wantFrom: "Newcastle",
			wantTo:   "Arsenal",
		},
		{
			name:     "position noun after the club",
			text:     "Chelsea midfielder Enzo Fernandez has attracted attention from Real Madrid",
			clubs:    []string{"Chelsea", "Real Madrid"},
			wantFrom: "Chelsea",
			wantTo:   "Real Madrid",
		},
		{
			name:     "destination phrase",
			text:     "Brighton rate Kaoru Mitoma highly, while Liverpool and Bayern Munich are possible destinations for the winger",
			clubs:    []string{"Brighton", "Liverpool", "Bayern Munich"},
			wantFrom: "Brighton",
			wantTo:   "Liverpool, Bayern Munich",
		},
		{
			name:     "buyer only picks one seller from the rest",
			text:     "Arsenal are keen on Bryan Mbeumo. Brentford value him highly, as do Fulham.",
			clubs:    []string{"Brentford", "Arsenal", "Fulham"},
			wantFrom: "Brentford",
			wantTo:   "Arsenal",
		},
		{
			name:   "second club inherits buying sign",
			text:   "Interest from PSG and Real Madrid in Kylian Mbappe",
			clubs:  []string{"PSG", "Real Madrid"},
			wantTo: "PSG, Real Madrid",
		},
		{
			name:     "windows count characters",
			text:     "Newcastle “Non à la vente” – Isak’s club, José’s side, are now willing to sell Isak",
			clubs:    []string{"Newcastle"},
			wantFrom: "Newcastle",
		},
		{
			name:     "seller fills remaining as destinations",
			text:     "West Ham want £100m for Rice, with Arsenal, Chelsea linked",
			clubs:    []string{"West Ham", "Arsenal", "Chelsea"},
			wantFrom: "West Ham",
			wantTo:   "Arsenal, Chelsea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ClassifyDirection(tt.text, tt.clubs)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("ClassifyDirection() = (%q, %q), want (%q, %q)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestClassifyDirection_FormerClubNeverAssigned(t *testing.T) {
	texts := []string{
		"Former Chelsea midfielder Jorginho is wanted by Arsenal",
		"Ex-Chelsea man Jorginho is wanted by Arsenal and Napoli",
	}

	for _, text := range texts {
		from, to := ClassifyDirection(text, []string{"Chelsea", "Arsenal", "Napoli"})
		if strings.Contains(from, "Chelsea") || strings.Contains(to, "Chelsea") {
			t.Errorf("ClassifyDirection(%q) = (%q, %q), former club must not be assigned", text, from, to)
		}
		if !strings.Contains(to, "Arsenal") {
			t.Errorf("ClassifyDirection(%q) to = %q, expected Arsenal", text, to)
		}
	}
}

func TestClassifyDirection_AllFormerFallsBackToRawOrder(t *testing.T) {
	from, to := ClassifyDirection("Former Chelsea and ex-Arsenal defender retires", []string{"Chelsea", "Arsenal"})
	if from != "Arsenal" || to != "Chelsea" {
		t.Errorf("Expected raw positional fallback (Arsenal, Chelsea), got (%q, %q)", from, to)
	}
}

func TestWindow(t *testing.T) {
	s := []rune("abcdef")
	if got := window(s, -3, 2); got != "ab" {
		t.Errorf("Expected clamped start, got %q", got)
	}
	if got := window(s, 4, 99); got != "ef" {
		t.Errorf("Expected clamped end, got %q", got)
	}
	if got := window(s, 5, 2); got != "" {
		t.Errorf("Expected empty window, got %q", got)
	}
	if got := window([]rune("Atlético Madrid"), 0, 8); got != "Atlético" {
		t.Errorf("Expected a character window, got %q", got)
	}
}

func TestAllIndexes(t *testing.T) {
	got := allIndexes([]rune("josé’s arsenal, arsenal"), "arsenal")
	if len(got) != 2 || got[0] != 7 || got[1] != 16 {
		t.Errorf("Expected character offsets [7 16], got %v", got)
	}
	if indexOf([]rune("arsenal"), "chelsea") != -1 {
		t.Error("Expected -1 for a missing club")
	}
}
