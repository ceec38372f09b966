// Package adapters turns fetched source pages into raw rumour items.
package adapters

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Source types recorded on scraped articles
const (
	SourceTypeWeb    = "web"
	SourceTypeReddit = "reddit"
	SourceTypeRSS    = "rss"
)

// Item is one rumour as it appears in a source, before entity extraction
type Item struct {
	Text        string     `json:"text"`
	Publication string     `json:"publication,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"` // Original article the rumour links to
	Author      string     `json:"author,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// Page is the result of running an adapter over one fetched document
type Page struct {
	URL        string     `json:"url"`
	Title      string     `json:"title,omitempty"`
	SourceType string     `json:"source_type"`
	SourceName string     `json:"source_name"`
	Date       *time.Time `json:"date,omitempty"`
	Content    string     `json:"-"` // Visible text, capped, for free-form extraction
	Items      []Item     `json:"items"`
}

// Adapter extracts rumour items from a source's HTML
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter understands the given URL/content
	CanHandle(rawURL string, contentType string) bool

	// Extract parses the document into a page of items
	Extract(doc *html.Node, rawURL string) (*Page, error)
}

// Registry picks an adapter for a URL
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the gossip column adapter and the
// generic article adapter as fallback
func NewRegistry() *Registry {
	registry := &Registry{}
	registry.Register(NewGossipAdapter())
	registry.generic = NewGenericAdapter()
	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter returns the first adapter that can handle the URL, or the
// generic adapter
func (r *Registry) FindAdapter(rawURL string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(rawURL, contentType) {
			return adapter
		}
	}
	return r.generic
}

// Extract parses body and runs the matching adapter
func (r *Registry) Extract(body []byte, rawURL, contentType string) (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return r.FindAdapter(rawURL, contentType).Extract(doc, rawURL)
}

// BaseAdapter provides node helpers shared by the HTML adapters
type BaseAdapter struct{}

var whitespace = regexp.MustCompile(`\s+`)

// ExtractText returns the text under n with children separated by spaces
// and whitespace collapsed
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(whitespace.ReplaceAllString(buf.String(), " "))
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, class := range strings.Fields(b.GetAttribute(n, "class")) {
		if class == className {
			return true
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate, in document order
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// element returns a predicate matching elements by tag name
func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// Title returns the document <title>
func (b *BaseAdapter) Title(doc *html.Node) string {
	if t := b.FindFirst(doc, element("title")); t != nil {
		return b.ExtractText(t)
	}
	return ""
}

// PublishedAt reads the article date from a <time datetime> element, then
// from the article:published_time meta tag
func (b *BaseAdapter) PublishedAt(doc *html.Node) *time.Time {
	timeEl := b.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "time" && b.GetAttribute(n, "datetime") != ""
	})
	if timeEl != nil {
		if t, ok := parseISOTime(b.GetAttribute(timeEl, "datetime")); ok {
			return &t
		}
	}

	meta := b.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			b.GetAttribute(n, "property") == "article:published_time"
	})
	if meta != nil {
		if t, ok := parseISOTime(b.GetAttribute(meta, "content")); ok {
			return &t
		}
	}
	return nil
}

func parseISOTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// hostName returns the URL's host without a leading "www."
func hostName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
