package adapters

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/JSmilg/veracity/internal/extract"
)

// GossipSourceName is the source name recorded for gossip column pages
const GossipSourceName = "BBC Sport Gossip Column"

var (
	// "(Mirror), external" closing a gossip paragraph
	citationRe   = regexp.MustCompile(`\(([^)]+)\)\s*,?\s*external\s*$`)
	inLanguageRe = regexp.MustCompile(`\s*-\s*in \w+$`)
	viaRe        = regexp.MustCompile(`\s+via\s+.*$`)
)

const minGossipChars = 50

// GossipAdapter parses the daily football gossip column. Each rumour is a
// paragraph ending with the citing publication in brackets and a link to
// the original story.
type GossipAdapter struct {
	BaseAdapter
}

// NewGossipAdapter creates a gossip column adapter
func NewGossipAdapter() *GossipAdapter {
	return &GossipAdapter{}
}

// Name returns the adapter name
func (a *GossipAdapter) Name() string {
	return "gossip"
}

// CanHandle accepts BBC football article pages
func (a *GossipAdapter) CanHandle(rawURL string, contentType string) bool {
	host := hostName(rawURL)
	if host != "bbc.com" && host != "bbc.co.uk" {
		return false
	}
	return strings.Contains(rawURL, "/sport/football/articles/") || strings.Contains(rawURL, "/sport/football/gossip")
}

// Extract returns one item per cited paragraph
func (a *GossipAdapter) Extract(doc *html.Node, rawURL string) (*Page, error) {
	page := &Page{
		URL:        rawURL,
		Title:      a.Title(doc),
		SourceType: SourceTypeWeb,
		SourceName: GossipSourceName,
		Date:       a.PublishedAt(doc),
	}

	var texts []string
	for _, p := range a.FindAll(doc, element("p")) {
		item, ok := a.paragraph(p)
		if !ok {
			continue
		}
		item.Date = page.Date
		page.Items = append(page.Items, item)
		texts = append(texts, item.Text)
	}
	page.Content = strings.Join(texts, "\n\n")

	return page, nil
}

func (a *GossipAdapter) paragraph(p *html.Node) (Item, bool) {
	text := a.ExtractText(p)
	if len(text) < minGossipChars {
		return Item{}, false
	}

	m := citationRe.FindStringSubmatch(text)
	if m == nil {
		return Item{}, false
	}

	pub := strings.TrimSpace(m[1])
	pub = inLanguageRe.ReplaceAllString(pub, "")
	pub = viaRe.ReplaceAllString(pub, "")

	var sourceURL string
	if links := a.FindAll(p, element("a")); len(links) > 0 {
		sourceURL = extract.StripWayback(a.GetAttribute(links[len(links)-1], "href"))
	}

	claim := strings.TrimSpace(citationRe.ReplaceAllString(text, ""))
	claim = strings.TrimSpace(strings.TrimRight(claim, ","))

	return Item{
		Text:        claim,
		Publication: pub,
		SourceURL:   sourceURL,
	}, true
}

// GossipIndexPage returns the URL of page n (1-based) of the gossip index
func GossipIndexPage(indexURL string, n int) string {
	if n <= 1 {
		return indexURL
	}
	return fmt.Sprintf("%s?page=%d", indexURL, n)
}

// GossipIndexLinks returns the distinct column URLs linked from an index
// page, in page order. Relative links resolve against pageURL; comment
// anchors are skipped.
func GossipIndexLinks(body []byte, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse gossip index: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse gossip index url: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.Contains(href, "/sport/football/articles/") || strings.Contains(href, "#") {
			return
		}
		resolved := extract.ResolveLink(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// GossipLinkFromFeed returns the link of the first feed entry whose title
// mentions gossip, or "" when none does
func GossipLinkFromFeed(body []byte) (string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse feed: %w", err)
	}

	for _, entry := range feed.Items {
		if strings.Contains(strings.ToLower(entry.Title), "gossip") {
			return entry.Link, nil
		}
	}
	return "", nil
}
