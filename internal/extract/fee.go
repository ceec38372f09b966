package extract

import (
	"regexp"
	"strings"
)

var (
	freeFeeRe        = regexp.MustCompile(`(?i)\bfree transfer\b|\bfree agent\b|\bon a free\b`)
	undisclosedFeeRe = regexp.MustCompile(`(?i)\bundisclosed fee\b`)
	symbolFeeRe      = regexp.MustCompile(`(?i)([£€$])\s?(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|billion|bn|m|k)?\b`)
	wordFeeRe        = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(million|billion|bn|m)\s+(pounds|euros|dollars)\b`)
	loanRe           = regexp.MustCompile(`(?i)\bloan(?:ed|s)?\b`)
)

var currencySymbols = map[string]string{
	"pounds":  "£",
	"euros":   "€",
	"dollars": "$",
}

// Fee extracts a normalised transfer fee such as "£105m", "Free", "Loan" or
// "Undisclosed". It returns "" when the text names no fee.
func Fee(text string) string {
	if freeFeeRe.MatchString(text) {
		return "Free"
	}
	if undisclosedFeeRe.MatchString(text) {
		return "Undisclosed"
	}

	loan := loanRe.MatchString(text)

	if m := symbolFeeRe.FindStringSubmatch(text); m != nil {
		fee := m[1] + strings.ReplaceAll(m[2], ",", "") + multiplierSuffix(m[3])
		if loan {
			fee += " (Loan)"
		}
		return fee
	}

	if m := wordFeeRe.FindStringSubmatch(text); m != nil {
		return currencySymbols[strings.ToLower(m[3])] + m[1] + multiplierSuffix(m[2])
	}

	if loan {
		return "Loan"
	}
	return ""
}

func multiplierSuffix(raw string) string {
	switch strings.ToLower(raw) {
	case "m", "million":
		return "m"
	case "bn", "billion":
		return "bn"
	case "k":
		return "k"
	}
	return ""
}
