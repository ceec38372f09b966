package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var transferKeywords = []string{
	"transfer", "sign", "signing", "signs", "signed",
	"deal", "move", "moving", "loan", "bid", "offer",
	"here we go", "done deal", "agreement", "agreed",
	"personal terms", "medical", "fee", "million",
	"contract", "release clause", "buy-out", "buyout",
	"swap", "exchange", "target", "interest", "interested",
	"negotiate", "negotiation", "talks", "discussion",
	"close to", "set to join", "confirm", "confirmed",
	"announce", "announcement", "official", "permanent",
	"free agent", "departure", "exit", "leave", "leaving",
	"want", "pursue", "chase", "enquiry", "inquiry",
}

var transferKeywordRe = func() *regexp.Regexp {
	quoted := make([]string, len(transferKeywords))
	for i, kw := range transferKeywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}()

// IsTransferRelated reports whether text mentions any transfer keyword
func IsTransferRelated(text string) bool {
	return transferKeywordRe.MatchString(text)
}

// VisibleText parses HTML and returns its text nodes, skipping scripts,
// styles and page chrome
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return visibleText(doc), nil
}

func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "header", "aside", "form":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// Sentences splits text on sentence terminators followed by whitespace and
// keeps sentences between 30 and 500 bytes
func Sentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder
	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 30 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				flush()
			}
		}
	}
	if current.Len() > 0 {
		flush()
	}

	return sentences
}

// TransferSentences returns the distinct transfer-related sentences of text
func TransferSentences(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range Sentences(text) {
		if !IsTransferRelated(s) {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
