package extract

import (
	"regexp"
	"strings"
)

const (
	nameWord   = `\p{Lu}\p{Ll}+`
	hyphenated = `\p{Lu}\p{Ll}+-\p{Lu}\p{Ll}+`
	// Two or more capitalised words, allowing common surname particles.
	fullName  = nameWord + `(?:-\p{Lu}\p{Ll}+)?(?:\s+(?:de\s+|van\s+|di\s+|da\s+|dos\s+|van\s+der\s+)?` + nameWord + `(?:-\p{Lu}\p{Ll}+)?)+`
	positions = `(?i:forward|midfielder|defender|goalkeeper|keeper|striker|winger|playmaker|right-back|left-back|centre-back|center-back|full-back|wing-back)`
)

var (
	// "Paulo Dybala, 32," or "29-year-old Spain midfielder Rodri Hernandez"
	playerWithAge = regexp.MustCompile(`(` + fullName + `),\s*\d{1,2}[,.]` +
		`|\d{1,2}-year-old\s+[A-Za-z\s]*?(` + fullName + `)`)

	// "midfielder Declan Rice", "defender Alexander-Arnold"
	positionalPlayer = regexp.MustCompile(positions + `\s+(` + fullName + `|` + hyphenated + `)`)

	// "Bruno Fernandes says ...", sentence-leading subject and a reporting verb
	subjectPlayer = regexp.MustCompile(`(?:^|[.!?]\s+)(` + fullName + `)\s+(?:says|said|has|have|wants|is|was|will|could|would|admits|insists|reveals|claims|hopes|tells|told|remains)\b`)

	// "Marcus Rashford's Manchester United future"
	possessivePlayer = regexp.MustCompile(`(` + fullName + `)['’]s\s+(?:\p{Lu}[\p{L}.&-]*\s+){1,3}future\b`)

	// "Dutch international Xavi Simons", "Brazilian winger Vinicius Junior"
	nationalityPlayer = regexp.MustCompile(`\b` + nationalities + `\s+(?:` + positions + `|international|star|youngster|teenager|wonderkid|talent|prospect)\s+(` + fullName + `|` + hyphenated + `)`)
)

const nationalities = `(?:English|Scottish|Welsh|Irish|Northern Irish|French|Spanish|German|Italian|Portuguese|Dutch|Belgian|Brazilian|Argentine|Argentinian|Uruguayan|Colombian|Chilean|Ecuadorian|Paraguayan|Mexican|American|Canadian|Norwegian|Swedish|Danish|Swiss|Austrian|Polish|Croatian|Serbian|Slovenian|Slovakian|Czech|Hungarian|Ukrainian|Turkish|Greek|Georgian|Moroccan|Algerian|Tunisian|Egyptian|Nigerian|Ghanaian|Senegalese|Ivorian|Cameroonian|Malian|Guinean|Japanese|South Korean|Korean|Australian)`

// notPlayers holds capitalised phrases the name patterns pick up that are not people
var notPlayers = map[string]bool{
	"premier league":    true,
	"champions league":  true,
	"europa league":     true,
	"conference league": true,
	"la liga":           true,
	"serie a":           true,
	"bundesliga":        true,
	"ligue one":         true,
	"ligue 1":           true,
	"under-21":          true,
	"under 21":          true,
	"south america":     true,
	"north america":     true,
	"saudi pro league":  true,
	"club world cup":    true,
	"world cup":         true,
	"fa cup":            true,
	"carabao cup":       true,
}

func isNotPlayer(name string) bool {
	lower := strings.ToLower(name)
	return notPlayers[lower] || clubSet[lower]
}

// Players returns candidate player names in the order the pattern families
// find them: age annotations, position words, sentence subjects,
// possessives, then nationality descriptions. Competitions and club names
// are filtered out.
func Players(text string) []string {
	var players []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || isNotPlayer(name) {
			return
		}
		for _, p := range players {
			if p == name {
				return
			}
		}
		players = append(players, name)
	}

	for _, m := range playerWithAge.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			add(m[1])
		} else {
			add(m[2])
		}
	}
	for _, re := range []*regexp.Regexp{positionalPlayer, subjectPlayer, possessivePlayer, nationalityPlayer} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}

	return players
}
