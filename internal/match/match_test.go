package match

import "testing"

func TestClubs(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Man Utd", "Manchester United", true},
		{"Manchester United", "man united", true},
		{"Spurs", "Tottenham Hotspur", true},
		{"West Ham", "West Ham United", true},
		{"PSG", "Paris Saint-Germain", true},
		{"Paris St-Germain", "Paris Saint-Germain", true},
		{"Inter Milan", "FC Internazionale Milano", true},
		{"Atletico Madrid", "Atletico de Madrid", true},
		{"Arsenal", "Arsenal FC", true},
		{"Manchester City", "Manchester United", false},
		{"", "Arsenal", false},
		{"Chelsea", "  ", false},
	}

	for _, tt := range tests {
		if got := Clubs(tt.a, tt.b); got != tt.want {
			t.Errorf("Clubs(%q, %q): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestAnyClub(t *testing.T) {
	if !AnyClub("Chelsea FC", "Arsenal, Chelsea") {
		t.Error("Expected a match on the second candidate")
	}
	if AnyClub("Liverpool", "Arsenal, Chelsea") {
		t.Error("Expected no match")
	}
	if AnyClub("Liverpool", "") {
		t.Error("Expected empty candidates never to match")
	}
}

func TestPlayers(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Declan Rice", "declan rice", true},
		{" Rice ", "Declan Rice", true},
		{"Rodri", "Rodrigo Hernandez", true},
		{"Declan Rice", "Bukayo Saka", false},
		{"", "Declan Rice", false},
	}

	for _, tt := range tests {
		if got := Players(tt.a, tt.b); got != tt.want {
			t.Errorf("Players(%q, %q): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestLastName(t *testing.T) {
	if got := LastName("  Frenkie de Jong "); got != "jong" {
		t.Errorf("Expected jong, got %q", got)
	}
	if got := LastName(""); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
}
