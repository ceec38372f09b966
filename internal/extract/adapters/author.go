package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/cache"
	"github.com/JSmilg/veracity/internal/fetch"
)

var (
	byPrefixRe = regexp.MustCompile(`(?i)^by\s+`)

	socialDomains = map[string]bool{
		"twitter.com":   true,
		"x.com":         true,
		"reddit.com":    true,
		"instagram.com": true,
		"facebook.com":  true,
	}

	authorMetaSelectors = []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
		`meta[name="sailthru.author"]`,
	}

	bylineSelectors = []string{
		`[rel="author"]`,
		".author-name",
		".byline__name",
		".article-author-name",
		".author",
		".byline",
	}
)

// PageFetcher fetches an HTML page
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// AuthorExtractor finds the byline of the article a rumour links to.
// Lookups, including misses, are cached per URL.
type AuthorExtractor struct {
	fetcher PageFetcher
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

type authorEntry struct {
	Name string `json:"name"`
}

// NewAuthorExtractor creates an extractor. c may be nil to disable caching.
func NewAuthorExtractor(f PageFetcher, c cache.Cache, ttl time.Duration, logger *zap.Logger) *AuthorExtractor {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthorExtractor{fetcher: f, cache: c, ttl: ttl, logger: logger}
}

// Author returns the cleaned author name for rawURL, or "" when the page
// cannot be fetched, is a social network post or names nobody
func (e *AuthorExtractor) Author(ctx context.Context, rawURL string) string {
	if rawURL == "" || IsSocialURL(rawURL) {
		return ""
	}

	key := cache.Key(cache.NamespaceAuthor, rawURL)
	var entry authorEntry
	if cache.GetJSON(e.cache, key, &entry) {
		return entry.Name
	}

	res, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		e.logger.Debug("author page fetch failed", zap.String("url", rawURL), zap.Error(err))
		if ctx.Err() == nil {
			e.remember(key, "")
		}
		return ""
	}

	name := AuthorFromHTML(res.Body)
	if name != "" {
		e.logger.Info("extracted author", zap.String("author", name), zap.String("url", rawURL))
	} else {
		e.logger.Debug("no author found", zap.String("url", rawURL))
	}
	e.remember(key, name)
	return name
}

func (e *AuthorExtractor) remember(key, name string) {
	if err := cache.SetJSON(e.cache, key, authorEntry{Name: name}, e.ttl); err != nil {
		e.logger.Debug("author cache write failed", zap.Error(err))
	}
}

// AuthorFromHTML tries JSON-LD, then meta tags, then byline elements
func AuthorFromHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if name := authorFromJSONLD(doc); name != "" {
		return name
	}

	for _, sel := range authorMetaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if name := CleanAuthorName(content); name != "" {
				return name
			}
		}
	}

	for _, sel := range bylineSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = CleanAuthorName(s.Text())
			return found == ""
		})
		if found != "" {
			return found
		}
	}

	return ""
}

func authorFromJSONLD(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		for _, item := range jsonLDItems(data) {
			if name := CleanAuthorName(jsonLDAuthor(item["author"])); name != "" {
				found = name
				return false
			}
		}
		return true
	})
	return found
}

// jsonLDItems flattens a JSON-LD document, following @graph
func jsonLDItems(data any) []map[string]any {
	var raw []any
	switch v := data.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			raw = graph
		} else {
			raw = []any{v}
		}
	case []any:
		raw = v
	}

	items := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func jsonLDAuthor(v any) string {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}
	switch a := v.(type) {
	case map[string]any:
		name, _ := a["name"].(string)
		return name
	case string:
		return a
	}
	return ""
}

// CleanAuthorName strips a "By " prefix, a trailing job title and
// punctuation, returning "" unless the result looks like a person's name
func CleanAuthorName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimSpace(byPrefixRe.ReplaceAllString(name, ""))
	if i := strings.Index(name, ","); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimRight(name, ".,;:")

	if !looksLikePersonName(name) {
		return ""
	}
	return name
}

func looksLikePersonName(name string) bool {
	if name == "" || !strings.Contains(name, " ") {
		return false
	}
	if strings.HasPrefix(name, "http") || strings.ContainsAny(name, "/.") {
		return false
	}
	if strings.ToUpper(name) == name && strings.ToLower(name) != name {
		return false
	}
	return len(name) <= 60
}

// IsSocialURL reports whether rawURL points at a social network rather
// than a news article
func IsSocialURL(rawURL string) bool {
	return socialDomains[hostName(rawURL)]
}
