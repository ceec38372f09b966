package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// contextWindow is how many characters either side of a club mention are inspected
const contextWindow = 80

// longContextWindow is used for the "offer a new contract" family
const longContextWindow = 140

type scoredPattern struct {
	re    *regexp.Regexp
	score float64
}

func compileFamily(score float64, patterns ...string) []scoredPattern {
	out := make([]scoredPattern, len(patterns))
	for i, p := range patterns {
		out[i] = scoredPattern{re: regexp.MustCompile(`(?i)` + p), score: score}
	}
	return out
}

// Club mentioned, then selling language: the club is letting the player go.
var sellingAfterClub = compileFamily(-1,
	`are open to allowing .{0,40} to leave`,
	`willing to sell`,
	`prepared to sell`,
	`could sell`,
	`ready to sell`,
	`want .{0,20} for`,
	`are demanding`,
	`are willing to let .{0,30} go`,
	`reject(?:ed)? (?:a |the )?bid`,
	`turned down (?:a |the )?bid`,
	`turned down (?:a |an )?offer`,
	`have rejected`,
	`set to release`,
	`looking to offload`,
	`open to offers`,
	`open to letting`,
	`prepared to let .{0,30} go`,
	`willing to listen to offers`,
	`could (?:let|allow) .{0,30} (?:leave|go)`,
	`'s (?:forward|midfielder|defender|goalkeeper|striker|winger|star|player)`,
	`open to sending`,
	`look(?:ing)? for buyers`,
	`set to look for buyers`,
	`want(?:s)? to offload`,
	`trying to move .{0,30} on`,
	`trying to offload`,
	`ready to let .{0,30} (?:leave|go)`,
	`could be sold`,
	`could be offloaded`,
	`available for transfer`,
	`(?:ward|fend) off interest`,
	`have offered`,
	`offered .{0,40} to\b`,
	`have accepted .{0,20} offer`,
	`accepted .{0,20} offer`,
	`accepted .{0,20} bid`,
)

// Club mentioned, then a plan to hand the player a new deal: the club is keeping him.
var sellingAfterClubLong = compileFamily(-1,
	`are planning to offer .{0,80} (?:a )?(?:new |lucrative )?contract`,
	`(?:planning|looking) to (?:offer|give) .{0,80} (?:a )?(?:new |lucrative )?(?:contract|deal)`,
)

// Club mentioned, then buying language.
var buyingAfterClub = compileFamily(+1,
	`are interested in`,
	`interested in signing`,
	`want to sign`,
	`wants to sign`,
	`keen on`,
	`keen to sign`,
	`targeting`,
	`tracking`,
	`keeping tabs on`,
	`scouting`,
	`monitoring`,
	`are trying to sign`,
	`pushing for`,
	`plotting`,
	`have made (?:a |an )?(?:bid|offer)`,
	`made (?:a |an )?(?:bid|offer)`,
	`tabled (?:a |an )?(?:bid|offer)`,
	`preparing (?:a |an )?(?:bid|offer)`,
	`eyeing`,
	`considering (?:a move for|signing)`,
	`lining up`,
	`looking to sign`,
	`looking to bring`,
	`are looking for`,
	`\btrying\b`,
	`hoping to sign`,
	`in the race for`,
	`in the hunt for`,
	`entered the race for`,
	`joined the race for`,
	`leading the race for`,
	`set their sights on`,
	`'s .{0,25}(?:targets|target list|radar|shortlist|wishlist|wish list)`,
	`'s (?:offer|bid)`,
)

// Buying language ending right before the club name. Anchored at the window end.
var buyingBeforeClub = compileFamily(+1,
	`join $`,
	`move to $`,
	`sign for $`,
	`switch to $`,
	`transfer to $`,
	`heading to $`,
	`set to join $`,
	`expected to join $`,
	`close to joining $`,
	`(?:bid|offer) from $`,
	`wanted by $`,
	`sought by $`,
	`targeted by $`,
	`interest from $`,
	`interest of $`,
	`interesting $`,
	`sending .{0,60}to $`,
	`loan .{0,40}to $`,
	`sell .{0,40}to $`,
	`offered .{0,60}to $`,
)

// Leaving language ending right before the club name. Anchored at the window end.
var sellingBeforeClub = compileFamily(-1,
	`leave $`,
	`exit $`,
	`depart $`,
	`quit $`,
	`set to leave $`,
	`expected to leave $`,
	`not (?:be )?staying at $`,
	`will not stay at $`,
	`loan (?:spell|deal|move) at $`,
)

var destinationPhrases = []string{
	"possible destinations",
	"potential destinations",
	"among the interested clubs",
	"among those interested",
}

var (
	positionAfterClub   = regexp.MustCompile(`^\s+(?:forward|midfielder|defender|goalkeeper|striker|winger|star|player|skipper|captain)\b`)
	possessiveAge       = regexp.MustCompile(`^\s?'s\s+\d{1,2}-year-old\b`)
	possessivePosition  = regexp.MustCompile(`^\s?'s\s+(?:forward|midfielder|defender|goalkeeper|striker|winger|star|captain|skipper)\b`)
	formerBeforeMention = regexp.MustCompile(`\bformer\s+$`)
	conjunctionBefore   = regexp.MustCompile(`(?:,\s*|and\s+|or\s+)$`)
	conjunctionGap      = regexp.MustCompile(`^[\s,]*(?:and|or)?\s*$`)
)

// ClassifyDirection decides which of the extracted clubs is selling the
// player (from) and which is buying (to). Multiple clubs on one side are
// joined with ", ". Clubs only named as a "former", "ex-" or "old" club are
// never assigned.
func ClassifyDirection(text string, clubs []string) (from, to string) {
	if len(clubs) == 0 {
		return "", ""
	}

	lower := strings.ToLower(text)

	if len(clubs) == 1 {
		return classifySingleClub(lower, clubs[0])
	}

	former := formerClubs(lower, clubs)

	scores := make(map[string]float64, len(clubs))
	for _, club := range clubs {
		if former[club] {
			continue
		}
		scores[club] += scoreMentions(lower, strings.ToLower(club))
	}

	propagateConjunctions(lower, clubs, former, scores)

	var fromClubs, toClubs, active []string
	for _, club := range clubs {
		if former[club] {
			continue
		}
		active = append(active, club)
		switch {
		case scores[club] < 0:
			fromClubs = append(fromClubs, club)
		case scores[club] > 0:
			toClubs = append(toClubs, club)
		}
	}

	if len(fromClubs) > 0 || len(toClubs) > 0 {
		if len(fromClubs) == 0 {
			// Most negative of the unassigned clubs becomes the seller.
			var pick string
			found := false
			for _, club := range active {
				if contains(toClubs, club) {
					continue
				}
				if !found || scores[club] < scores[pick] {
					pick = club
					found = true
				}
			}
			if found {
				fromClubs = []string{pick}
			}
		}
		if len(toClubs) == 0 {
			for _, club := range active {
				if !contains(fromClubs, club) {
					toClubs = append(toClubs, club)
				}
			}
		}
		return strings.Join(fromClubs, ", "), strings.Join(toClubs, ", ")
	}

	// No directional signal: destination is usually named first.
	switch {
	case len(active) >= 2:
		return active[1], active[0]
	case len(active) == 1:
		return "", active[0]
	}
	return clubs[1], clubs[0]
}

func classifySingleClub(lower, club string) (string, string) {
	q := regexp.QuoteMeta(strings.ToLower(club))
	leaving := []string{
		`(?:set to|expected to|wants to|looking to|hoping to|ready to)\s+leave\s+` + q,
		`leave\s+` + q,
		`depart(?:ing|s|)\s+` + q,
		`exit(?:ing|s|)\s+` + q,
		`(?:leaving|left)\s+` + q,
		q + `.*\b(?:departure|exit)`,
		`(?:out of|away from)\s+` + q,
	}
	for _, p := range leaving {
		if regexp.MustCompile(p).MatchString(lower) {
			return club, ""
		}
	}

	runes := []rune(lower)
	clubLower := strings.ToLower(club)
	if pos := indexOf(runes, clubLower); pos != -1 {
		end := pos + utf8.RuneCountInString(clubLower)
		after := window(runes, end, end+contextWindow)
		for _, sp := range sellingAfterClub {
			if sp.re.MatchString(after) {
				return club, ""
			}
		}
	}

	return "", club
}

func formerClubs(lower string, clubs []string) map[string]bool {
	former := make(map[string]bool)
	for _, club := range clubs {
		q := regexp.QuoteMeta(strings.ToLower(club))
		for _, p := range []string{`\bformer\s+` + q + `\b`, `\bex-` + q + `\b`, `\bold\s+` + q + `\b`} {
			if regexp.MustCompile(p).MatchString(lower) {
				former[club] = true
				break
			}
		}
	}
	return former
}

// scoreMentions sums the directional evidence around every mention of club.
// Negative totals mark a seller, positive totals a buyer.
func scoreMentions(lower, clubLower string) float64 {
	runes := []rune(lower)
	clubLen := utf8.RuneCountInString(clubLower)

	var score float64
	for _, pos := range allIndexes(runes, clubLower) {
		beforeCheck := window(runes, pos-10, pos)
		if formerBeforeMention.MatchString(beforeCheck) || strings.HasSuffix(strings.TrimRight(beforeCheck, " \t\n\r"), "ex-") {
			continue
		}

		end := pos + clubLen
		after := window(runes, end, end+contextWindow)
		before := window(runes, pos-contextWindow, pos)

		score += firstMatch(sellingAfterClub, after)
		score += firstMatch(sellingAfterClubLong, window(runes, end, end+longContextWindow))
		score += firstMatch(buyingAfterClub, after)
		score += firstMatch(buyingBeforeClub, before)
		score += firstMatch(sellingBeforeClub, before)

		if positionAfterClub.MatchString(window(runes, end, end+15)) {
			score--
		}

		possessive := window(runes, end, end+30)
		if possessiveAge.MatchString(possessive) || possessivePosition.MatchString(possessive) {
			score -= 1.5
		}

		for _, phrase := range destinationPhrases {
			if strings.Contains(after, phrase) {
				score++
				break
			}
		}
	}
	return score
}

// propagateConjunctions lets an unscored club share the score of a scored
// club it is listed with, as in "linked with Chelsea and Arsenal".
func propagateConjunctions(lower string, clubs []string, former map[string]bool, scores map[string]float64) {
	runes := []rune(lower)
	for _, club := range clubs {
		if former[club] || scores[club] != 0 {
			continue
		}
		clubLower := strings.ToLower(club)
		pos := indexOf(runes, clubLower)
		if pos == -1 {
			continue
		}
		if !conjunctionBefore.MatchString(window(runes, pos-5, pos)) {
			continue
		}
		for _, other := range clubs {
			if other == club || former[other] || scores[other] == 0 {
				continue
			}
			otherLower := strings.ToLower(other)
			otherPos := indexOf(runes, otherLower)
			if otherPos == -1 || otherPos >= pos {
				continue
			}
			if conjunctionGap.MatchString(window(runes, otherPos+utf8.RuneCountInString(otherLower), pos)) {
				scores[club] = scores[other]
				break
			}
		}
	}
}

func firstMatch(family []scoredPattern, s string) float64 {
	for _, sp := range family {
		if sp.re.MatchString(s) {
			return sp.score
		}
	}
	return 0
}

// window returns the characters s[from:to] clamped to the bounds
func window(s []rune, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return ""
	}
	return string(s[from:to])
}

// allIndexes returns every (possibly overlapping) character offset of sub in s
func allIndexes(s []rune, sub string) []int {
	var out []int
	target := []rune(sub)
	if len(target) == 0 {
		return out
	}
	for i := 0; i+len(target) <= len(s); i++ {
		if equalRunes(s[i:i+len(target)], target) {
			out = append(out, i)
		}
	}
	return out
}

func indexOf(s []rune, sub string) int {
	if idx := allIndexes(s, sub); len(idx) > 0 {
		return idx[0]
	}
	return -1
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
