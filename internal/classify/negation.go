package classify

import (
	"regexp"
	"strings"
)

var negativePhrases = []string{
	// contract extensions
	"signed a contract extension",
	"signed a new deal",
	"signed a new contract",
	"extended his contract",
	"extended her contract",
	"renewed his contract",
	"renewed her contract",
	"penned a new deal",
	"penned a new contract",
	"contract extension",
	// explicit denials
	"will not",
	"won't",
	"not going to",
	"ruled out a move",
	"decided to stay",
	"staying at",
	"not leaving",
	"no intention of leaving",
	"committed to",
	"committed his future",
	// blocked or collapsed moves
	"blocked",
	"rejected the chance to",
	"turned down a move",
	"turned down the chance",
	"no interest in leaving",
	"not for sale",
	"deal is off",
	"deal collapsed",
	"move has collapsed",
	"transfer is off",
	"move is off",
	"pulled out",
	"walked away",
}

var negativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)will not (?:be )?(?:joining|moving|leaving|signing)`),
	regexp.MustCompile(`(?i)not (?:interested in|keen on) (?:a move|leaving|joining)`),
}

// IsNegative reports whether text says a transfer will not happen: a
// contract extension, an explicit denial, or a blocked or collapsed move.
// Callers clear the claim's destination club when it returns true.
func IsNegative(text string) bool {
	lower := strings.ToLower(text)

	for _, phrase := range negativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	for _, p := range negativePatterns {
		if p.MatchString(lower) {
			return true
		}
	}

	return false
}
