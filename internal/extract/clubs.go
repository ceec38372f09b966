package extract

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// clubGazetteer lists club display names. Shorter forms ("Newcastle") sit
// alongside full names ("Newcastle United"); matching prefers the longer one.
var clubGazetteer = []string{
	// Premier League
	"Arsenal", "Aston Villa", "Bournemouth", "AFC Bournemouth", "Brentford", "Brighton",
	"Brighton & Hove Albion", "Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
	"Ipswich Town", "Leicester City", "Liverpool", "Luton Town",
	"Manchester City", "Manchester United",
	"Newcastle", "Newcastle United",
	"Nottingham Forest", "Sheffield United",
	"Southampton", "Tottenham", "Tottenham Hotspur",
	"West Ham", "West Ham United", "Wolverhampton", "Wolverhampton Wanderers", "Wolves",
	// Championship and EFL
	"Birmingham City", "Blackburn", "Blackburn Rovers", "Bristol City", "Coventry", "Coventry City",
	"Derby County", "Hull City", "Leeds", "Leeds United",
	"Middlesbrough", "Norwich", "Norwich City", "Plymouth", "Plymouth Argyle",
	"QPR", "Queens Park Rangers", "Sheffield Wednesday", "Stoke City", "Sunderland",
	"Swansea", "Swansea City", "Watford", "West Brom", "West Bromwich Albion", "Millwall",
	"Preston North End", "Cardiff City", "Portsmouth", "Oxford United", "Charlton Athletic",
	"Wrexham", "Bristol Rovers", "Huddersfield Town", "Bolton Wanderers",
	// Scotland
	"Celtic", "Rangers", "Aberdeen", "Hearts", "Hibernian", "Motherwell", "Dundee United",
	// Spain
	"Real Madrid", "Barcelona", "Atletico Madrid", "Sevilla",
	"Real Sociedad", "Real Betis", "Villarreal", "Girona",
	"Valencia", "Athletic Bilbao", "Celta Vigo", "Osasuna", "Mallorca", "Getafe",
	"Rayo Vallecano", "Espanyol", "Alaves", "Las Palmas", "Leganes", "Real Valladolid",
	"Levante", "Elche", "Real Oviedo",
	// Germany
	"Bayern Munich", "Borussia Dortmund", "RB Leipzig", "Bayer Leverkusen",
	"Eintracht Frankfurt", "Wolfsburg", "Hoffenheim",
	"Borussia Monchengladbach", "Stuttgart", "Freiburg", "Union Berlin", "Werder Bremen",
	"Mainz", "Augsburg", "Heidenheim", "St Pauli", "Bochum", "Hamburg", "Schalke",
	"Cologne", "Hertha Berlin",
	// Italy
	"Juventus", "AC Milan", "Inter Milan", "Napoli", "Roma",
	"Lazio", "Fiorentina", "Atalanta", "Bologna", "Torino",
	"Monza", "Lecce", "Como", "Udinese", "Genoa", "Cagliari", "Empoli", "Verona",
	"Parma", "Venezia", "Sassuolo", "Sampdoria", "Pisa", "Cremonese",
	// France
	"Paris St-Germain", "Paris Saint-Germain", "PSG", "Lyon", "Marseille", "Monaco",
	"Lille", "Nice", "Rennes", "Lens", "Strasbourg", "Nantes", "Toulouse", "Reims",
	"Montpellier", "Auxerre", "Angers", "Le Havre", "Brest", "Saint-Etienne", "Lorient",
	"Paris FC", "Metz",
	// Portugal
	"Porto", "Benfica", "Sporting", "Sporting Lisbon", "Sporting CP", "Braga", "Vitoria Guimaraes",
	// Netherlands and Belgium
	"Ajax", "Feyenoord", "PSV", "PSV Eindhoven", "AZ Alkmaar", "Twente", "Utrecht",
	"Anderlecht", "Club Brugge", "Genk", "Gent", "Union Saint-Gilloise", "Standard Liege",
	// Turkey
	"Galatasaray", "Fenerbahce", "Besiktas", "Trabzonspor",
	// Rest of Europe
	"Shakhtar Donetsk", "Red Star Belgrade", "Olympiacos", "Panathinaikos", "PAOK", "AEK Athens",
	"Red Bull Salzburg", "Salzburg", "Rapid Vienna", "Young Boys", "Basel",
	"Dinamo Zagreb", "Sparta Prague", "Slavia Prague", "Copenhagen", "Midtjylland",
	"Bodo/Glimt", "Malmo", "Zenit St Petersburg", "Dynamo Kyiv",
	// South America
	"Flamengo", "Palmeiras", "Santos", "Corinthians", "Sao Paulo", "Fluminense", "Botafogo",
	"Gremio", "Internacional", "Atletico Mineiro", "Cruzeiro", "Vasco da Gama",
	"Boca Juniors", "River Plate", "Racing Club", "Independiente", "Estudiantes",
	// Saudi Arabia, Qatar
	"Al-Hilal", "Al-Nassr", "Al-Ahli", "Al-Ittihad", "Al-Qadsiah", "Al-Ettifaq", "Al-Shabab",
	"Al-Sadd", "Al-Duhail",
	// North America
	"Inter Miami", "LA Galaxy", "Los Angeles FC", "LAFC", "New York City FC", "New York Red Bulls",
	"Atlanta United", "Seattle Sounders", "Toronto FC", "Columbus Crew", "Orlando City",
	"Club America", "Monterrey", "Tigres",
}

// clubsByLength is the gazetteer ordered longest name first
var clubsByLength []string

// clubSet holds every gazetteer name lower-cased
var clubSet map[string]bool

func init() {
	clubsByLength = append([]string(nil), clubGazetteer...)
	sort.SliceStable(clubsByLength, func(i, j int) bool {
		return len(clubsByLength[i]) > len(clubsByLength[j])
	})

	clubSet = make(map[string]bool, len(clubGazetteer))
	for _, name := range clubGazetteer {
		clubSet[strings.ToLower(name)] = true
	}
}

// IsClubName reports whether name is a gazetteer club, ignoring case
func IsClubName(name string) bool {
	return clubSet[strings.ToLower(strings.TrimSpace(name))]
}

// Clubs returns the gazetteer clubs mentioned in text, as display names,
// ordered by where they first appear. Longer names are matched first and
// a shorter name already covered by a longer find is dropped, so
// "Newcastle United" never also yields "Newcastle". A mention must start
// with a capital letter: "a nice move" is not Nice.
func Clubs(text string) []string {
	lower := foldCase(text)

	type found struct {
		name string
		pos  int
	}
	var finds []found

	for _, name := range clubsByLength {
		pos := indexWord(text, lower, strings.ToLower(name))
		if pos == -1 {
			continue
		}
		subsumed := false
		for _, f := range finds {
			if strings.Contains(f.name, name) || strings.Contains(name, f.name) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			finds = append(finds, found{name: name, pos: pos})
		}
	}

	sort.SliceStable(finds, func(i, j int) bool {
		return finds[i].pos < finds[j].pos
	})

	clubs := make([]string, len(finds))
	for i, f := range finds {
		clubs[i] = f.name
	}
	return clubs
}

// indexWord finds sub in the folded text s where it is not embedded in a
// longer word ("Roma" inside "bromance") and the original text is
// capitalised at that offset
func indexWord(orig, s, sub string) int {
	for start := 0; start <= len(s)-len(sub); {
		idx := strings.Index(s[start:], sub)
		if idx == -1 {
			return -1
		}
		idx += start
		end := idx + len(sub)
		if !letterBefore(s, idx) && !letterAt(s, end) && capitalAt(orig, idx) {
			return idx
		}
		start = idx + 1
	}
	return -1
}

// foldCase lower-cases s rune by rune, keeping any rune whose lower-case
// form has a different encoded length so byte offsets stay aligned with s
func foldCase(s string) string {
	return strings.Map(func(r rune) rune {
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != utf8.RuneLen(r) {
			return r
		}
		return l
	}, s)
}

func capitalAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

func letterBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func letterAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
