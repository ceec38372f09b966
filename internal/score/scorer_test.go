package score

import (
	"testing"
	"time"

	"github.com/JSmilg/veracity/internal/model"
)

func day(n int) time.Time {
	return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func claim(id, journalist int64, player, toClub string, status model.ValidationStatus, d int) model.Claim {
	return model.Claim{
		ID:           id,
		JournalistID: journalist,
		PlayerName:   player,
		ToClub:       toClub,
		Status:       status,
		ClaimDate:    day(d),
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"no stories", nil, "0.00"},
		{"always first", []float64{1, 1}, "100.00"},
		{"always last", []float64{0}, "0.00"},
		{"two thirds", []float64{1, 1, 0}, "66.67"},
		{"one third", []float64{1, 0, 0}, "33.33"},
		{"mixed", []float64{0.5, 1}, "75.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Speed(tt.values).StringFixed(2)
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRoundFloat_HalfEven(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.675, "2.67"}, // stored below the half
		{0.125, "0.12"},
		{0.375, "0.38"},
		{66.666666, "66.67"},
	}

	for _, tt := range tests {
		got := roundFloat(tt.in).StringFixed(2)
		if got != tt.want {
			t.Errorf("roundFloat(%v): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(2, 3).StringFixed(2); got != "66.67" {
		t.Errorf("Expected 66.67, got %s", got)
	}
	if got := Percent(0, 0).StringFixed(2); got != "0.00" {
		t.Errorf("Expected 0.00 for empty set, got %s", got)
	}
}

func TestTruthfulness(t *testing.T) {
	claims := []model.Claim{
		claim(1, 1, "Bowen", "Liverpool", model.StatusConfirmedTrue, 0),
		claim(2, 1, "", "", model.StatusConfirmedTrue, 0),
		claim(3, 1, "Isak", "Liverpool", model.StatusProvenFalse, 0),
		claim(4, 1, "Guehi", "Liverpool", model.StatusPending, 0),
	}
	if got := Truthfulness(claims).String(); got != "2" {
		t.Errorf("Expected 2, got %s", got)
	}
}

func TestStories(t *testing.T) {
	claims := []model.Claim{
		claim(1, 1, "Jarrod Bowen", "Liverpool", model.StatusConfirmedTrue, 0),
		claim(2, 2, "Bowen", "Liverpool FC", model.StatusConfirmedTrue, 1),
		claim(3, 3, "Bowen", "", model.StatusConfirmedTrue, 2),
		claim(4, 1, "Bowen", "Chelsea", model.StatusConfirmedTrue, 3),
		claim(5, 1, "Isak", "Arsenal", model.StatusPending, 4),
		claim(6, 1, "", "Arsenal", model.StatusConfirmedTrue, 5),
	}

	stories := Stories(claims)
	if len(stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d: %+v", len(stories), stories)
	}
	if stories[0] != (Story{Player: "Jarrod Bowen", Club: "Liverpool"}) {
		t.Errorf("Unexpected first story %+v", stories[0])
	}
	if stories[1] != (Story{Player: "Bowen", Club: "Chelsea"}) {
		t.Errorf("Unexpected second story %+v", stories[1])
	}
}

func TestStory_Covers(t *testing.T) {
	s := Story{Player: "Jarrod Bowen", Club: "Liverpool"}
	tests := []struct {
		name  string
		claim model.Claim
		want  bool
	}{
		{"same", claim(1, 1, "Bowen", "Liverpool", model.StatusPending, 0), true},
		{"candidate list", claim(1, 1, "Bowen", "Liverpool, Arsenal", model.StatusPending, 0), true},
		{"other club", claim(1, 1, "Bowen", "Chelsea", model.StatusPending, 0), false},
		{"no club on claim", claim(1, 1, "Bowen", "", model.StatusPending, 0), false},
		{"other player", claim(1, 1, "Salah", "Liverpool", model.StatusPending, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Covers(tt.claim); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	open := Story{Player: "Bowen"}
	if !open.Covers(claim(1, 1, "Jarrod Bowen", "", model.StatusPending, 0)) {
		t.Error("Expected a story without a club to cover any claim about the player")
	}
}

func TestEarliness_ByJournalist(t *testing.T) {
	claims := []model.Claim{
		// Bowen to Liverpool: j2 first, j3 second, j1 last
		claim(1, 1, "Jarrod Bowen", "Liverpool", model.StatusConfirmedTrue, 3),
		claim(2, 2, "Bowen", "Liverpool", model.StatusPending, 1),
		claim(3, 3, "Bowen", "Liverpool, Arsenal", model.StatusPending, 2),
		claim(4, 2, "Bowen", "Liverpool", model.StatusPending, 4),
		claim(5, 4, "Bowen", "Chelsea", model.StatusPending, 0),
		// Mbappe to Real Madrid: j1 first, j2 second, j3 last
		claim(6, 2, "Mbappe", "Real Madrid", model.StatusConfirmedTrue, 6),
		claim(7, 1, "Kylian Mbappe", "Real Madrid", model.StatusPending, 5),
		claim(8, 3, "Mbappe", "Real Madrid", model.StatusPending, 7),
		// Single reporter, excluded
		claim(9, 5, "Salah", "Al Hilal", model.StatusConfirmedTrue, 0),
	}

	earliness := Earliness(Stories(claims), claims, ByJournalist)

	want := map[int64]string{1: "50.00", 2: "75.00", 3: "25.00"}
	for id, speed := range want {
		if got := Speed(earliness[id]).StringFixed(2); got != speed {
			t.Errorf("journalist %d: expected speed %s, got %s (earliness %v)", id, speed, got, earliness[id])
		}
	}
	if _, ok := earliness[4]; ok {
		t.Error("Expected journalist 4 to have no ranked stories")
	}
	if _, ok := earliness[5]; ok {
		t.Error("Expected single-reporter story to be excluded")
	}
}

func TestEarliness_TwoReporters(t *testing.T) {
	claims := []model.Claim{
		claim(1, 1, "Bowen", "Liverpool", model.StatusConfirmedTrue, 1),
		claim(2, 2, "Bowen", "Liverpool", model.StatusPending, 0),
	}

	earliness := Earliness(Stories(claims), claims, ByJournalist)
	if len(earliness[2]) != 1 || earliness[2][0] != 1.0 {
		t.Errorf("Expected earliest reporter at 1.0, got %v", earliness[2])
	}
	if len(earliness[1]) != 1 || earliness[1][0] != 0.0 {
		t.Errorf("Expected latest reporter at 0.0, got %v", earliness[1])
	}
}

func TestPublicationSpeeds(t *testing.T) {
	a := claim(1, 1, "Bowen", "Liverpool", model.StatusConfirmedTrue, 1)
	a.Publication = "The Athletic"
	b := claim(2, 2, "Bowen", "Liverpool", model.StatusPending, 2)
	b.Publication = "Sky Sports"
	c := claim(3, 3, "Bowen", "Liverpool", model.StatusPending, 0)

	speeds := PublicationSpeeds([]model.Claim{a, b, c})
	if len(speeds) != 2 {
		t.Fatalf("Expected 2 publications, got %d", len(speeds))
	}
	if got := speeds["The Athletic"].StringFixed(2); got != "100.00" {
		t.Errorf("Expected The Athletic at 100.00, got %s", got)
	}
	if got := speeds["Sky Sports"].StringFixed(2); got != "0.00" {
		t.Errorf("Expected Sky Sports at 0.00, got %s", got)
	}
}

func TestStats(t *testing.T) {
	claims := []model.Claim{
		{Status: model.StatusConfirmedTrue, SourceType: model.SourceOriginal, IsFirstClaim: true},
		{Status: model.StatusConfirmedTrue, SourceType: model.SourceCiting, IsFirstClaim: true},
		{Status: model.StatusProvenFalse, SourceType: model.SourceOriginal},
		{Status: model.StatusPartiallyTrue, SourceType: model.SourceOriginal},
		{Status: model.StatusPending, SourceType: model.SourceCiting},
	}

	st := Stats(claims)
	checks := []struct {
		name      string
		got, want int
	}{
		{"total", st.TotalClaims, 5},
		{"validated", st.ValidatedClaims, 4},
		{"pending", st.PendingClaims, 1},
		{"true", st.TrueClaims, 2},
		{"false", st.FalseClaims, 1},
		{"partially true", st.PartiallyTrueClaims, 1},
		{"original scoops", st.OriginalScoops, 3},
		{"first to report", st.FirstToReport, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}
}

func TestClubStats(t *testing.T) {
	claims := []model.Claim{
		claim(1, 1, "Bowen", "Liverpool", model.StatusConfirmedTrue, 2),
		claim(2, 1, "Isak", "Liverpool", model.StatusProvenFalse, 1),
		claim(3, 2, "Bowen", "Liverpool", model.StatusConfirmedTrue, 1),
		claim(4, 2, "Guehi", "Liverpool", model.StatusConfirmedTrue, 3),
		claim(5, 3, "Guehi", "Liverpool", model.StatusPending, 4),
	}
	journalists := map[int64]model.Journalist{
		1: {ID: 1, Name: "David Ornstein", Slug: "david-ornstein"},
		2: {ID: 2, Name: "Fabrizio Romano", Slug: "fabrizio-romano"},
		3: {ID: 3, Name: "Ben Jacobs", Slug: "ben-jacobs"},
	}

	stats := ClubStats(claims, claims, journalists)
	if len(stats) != 3 {
		t.Fatalf("Expected 3 journalists, got %d", len(stats))
	}

	want := []struct {
		id       int64
		slug     string
		accuracy string
		speed    string
	}{
		{2, "fabrizio-romano", "100.00", "100.00"},
		{1, "david-ornstein", "50.00", "0.00"},
		{3, "ben-jacobs", "0.00", "0.00"},
	}
	for i, w := range want {
		got := stats[i]
		if got.JournalistID != w.id {
			t.Errorf("position %d: expected journalist %d, got %d", i, w.id, got.JournalistID)
			continue
		}
		if got.Slug != w.slug {
			t.Errorf("journalist %d: expected slug %s, got %s", w.id, w.slug, got.Slug)
		}
		if a := got.Accuracy.StringFixed(2); a != w.accuracy {
			t.Errorf("journalist %d: expected accuracy %s, got %s", w.id, w.accuracy, a)
		}
		if s := got.Speed.StringFixed(2); s != w.speed {
			t.Errorf("journalist %d: expected speed %s, got %s", w.id, w.speed, s)
		}
	}
	if stats[2].PendingClaims != 1 {
		t.Errorf("Expected 1 pending claim for journalist 3, got %d", stats[2].PendingClaims)
	}
}

func TestClubStats_RanksOverAllClaims(t *testing.T) {
	early := claim(1, 2, "Declan Rice", "Arsenal", model.StatusPending, 1)
	second := claim(2, 3, "Declan Rice", "Arsenal", model.StatusPending, 2)
	second.FromClub = "West Ham United"
	confirmed := claim(3, 1, "Declan Rice", "Arsenal", model.StatusConfirmedTrue, 3)
	confirmed.FromClub = "West Ham United"

	// Journalist 2 never named West Ham, so only the other two are club claims
	clubClaims := []model.Claim{second, confirmed}
	all := []model.Claim{early, second, confirmed}

	stats := ClubStats(clubClaims, all, nil)
	if len(stats) != 2 {
		t.Fatalf("Expected 2 journalists, got %d", len(stats))
	}

	speeds := make(map[int64]string)
	for _, st := range stats {
		speeds[st.JournalistID] = st.Speed.StringFixed(2)
	}
	if speeds[3] != "50.00" {
		t.Errorf("Expected speed 50.00 for journalist 3, got %s", speeds[3])
	}
	if speeds[1] != "0.00" {
		t.Errorf("Expected speed 0.00 for journalist 1, got %s", speeds[1])
	}
}
