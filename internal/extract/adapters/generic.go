package adapters

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/JSmilg/veracity/internal/extract"
)

const maxContentChars = 50000

// GenericAdapter is the fallback for article pages on unknown sites: every
// transfer-related sentence of the article body becomes an item
type GenericAdapter struct {
	BaseAdapter
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(rawURL string, contentType string) bool {
	return true
}

// Extract reads the article text from <article>/<main>, falling back to
// paragraphs, and splits it into transfer sentences
func (a *GenericAdapter) Extract(doc *html.Node, rawURL string) (*Page, error) {
	page := &Page{
		URL:        rawURL,
		Title:      a.Title(doc),
		SourceType: SourceTypeWeb,
		SourceName: hostName(rawURL),
		Date:       a.PublishedAt(doc),
		Content:    a.content(doc),
	}

	author := ""
	if meta := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" && a.GetAttribute(n, "name") == "author"
	}); meta != nil {
		author = CleanAuthorName(a.GetAttribute(meta, "content"))
	}

	for _, sentence := range extract.TransferSentences(page.Content) {
		page.Items = append(page.Items, Item{
			Text:        sentence,
			Publication: page.SourceName,
			SourceURL:   rawURL,
			Author:      author,
			Date:        page.Date,
		})
	}

	return page, nil
}

func (a *GenericAdapter) content(doc *html.Node) string {
	var parts []string
	for _, n := range a.FindAll(doc, func(n *html.Node) bool {
		return isBody(n) && !hasAncestor(n, isBody)
	}) {
		parts = append(parts, a.ExtractText(n))
	}

	if len(parts) == 0 {
		for _, p := range a.FindAll(doc, element("p")) {
			if text := a.ExtractText(p); text != "" {
				parts = append(parts, text)
			}
		}
	}

	content := strings.Join(parts, " ")
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}
	return content
}

func isBody(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "article" || n.Data == "main")
}

func hasAncestor(n *html.Node, predicate func(*html.Node) bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if predicate(p) {
			return true
		}
	}
	return false
}
