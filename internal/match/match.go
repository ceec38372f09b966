// Package match holds the fuzzy player and club comparisons shared by
// reconciliation and scoring.
package match

import "strings"

// clubAliases maps common short forms to the name the transfer feeds use
var clubAliases = map[string]string{
	"man utd":          "manchester united",
	"man united":       "manchester united",
	"man city":         "manchester city",
	"spurs":            "tottenham hotspur",
	"wolves":           "wolverhampton wanderers",
	"newcastle":        "newcastle united",
	"west ham":         "west ham united",
	"psg":              "paris saint-germain",
	"paris st-germain": "paris saint-germain",
	"inter":            "inter milan",
	"inter milan":      "fc internazionale milano",
	"barca":            "barcelona",
	"bayern":           "bayern munich",
	"atletico":         "atletico de madrid",
	"atletico madrid":  "atletico de madrid",
	"real":             "real madrid",
}

// NormaliseClub lower-cases and trims name and maps it through the alias
// table. Aliases are applied once, not chained.
func NormaliseClub(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := clubAliases[lowered]; ok {
		return alias
	}
	return lowered
}

// Clubs reports whether two club names refer to the same club: after
// normalisation either contains the other. Empty names never match.
func Clubs(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	na, nb := NormaliseClub(a), NormaliseClub(b)
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// AnyClub reports whether club matches any candidate of a ", "-joined list
func AnyClub(club, candidates string) bool {
	for _, c := range strings.Split(candidates, ",") {
		if Clubs(club, c) {
			return true
		}
	}
	return false
}

// NormalisePlayer trims and lower-cases a player name
func NormalisePlayer(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Players reports whether two player names match case-insensitively with
// either contained in the other. Empty names never match.
func Players(a, b string) bool {
	na, nb := NormalisePlayer(a), NormalisePlayer(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// LastName returns the lower-cased final token of a player name
func LastName(name string) string {
	parts := strings.Fields(NormalisePlayer(name))
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
