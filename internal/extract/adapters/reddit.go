package adapters

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RedditSourceName is the source name recorded for r/soccer scrapes
const RedditSourceName = "Reddit r/soccer"

var (
	// r/soccer titles open with the source: "[Fabrizio Romano] ..."
	leadingTagRe = regexp.MustCompile(`^\s*\[([^\]]+)\]`)
	anyTagRe     = regexp.MustCompile(`\[[^\]]+\]`)

	redditTransferRe = regexp.MustCompile(`(?i)\b(?:sign|signing|transfer|deal|move|join|joining|loan|loaned|` +
		`bid|offer|agree|agreement|interested|target|pursue|want|` +
		`close to|set to|expected to|confirm|announce|official|` +
		`negotiate|negotiation|fee|contract|swap|swap deal|` +
		`depart|departure|leave|leaving|exit|release|sell|sold|` +
		`approach|enquiry|inquiry|reject|accept|complete|done deal|` +
		`medical|personal terms|agree terms|here we go)\b`)

	redditSkipTags = map[string]bool{
		"match thread": true, "post match thread": true, "pre match thread": true,
		"goal": true, "highlight": true, "highlights": true, "great goal": true,
		"media": true, "oc": true, "original content": true, "discussion": true,
		"daily discussion": true, "meme": true, "gif": true, "video": true,
		"image": true, "stats": true, "stat": true,
	}
)

const minRedditChars = 20

// RedditListing is one page of a subreddit listing
type RedditListing struct {
	Items []Item
	After string // Cursor for the next page, "" on the last
	Posts int    // Link posts on the page, transfer or not
}

type redditListing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string     `json:"kind"`
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	IsSelf     bool    `json:"is_self"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// RedditPageURL builds the listing URL for one page
func RedditPageURL(listingURL string, limit int, after string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}
	sep := "?"
	if strings.Contains(listingURL, "?") {
		sep = "&"
	}
	return listingURL + sep + q.Encode()
}

// ParseRedditListing keeps the link posts whose title carries a source
// tag and reads as a transfer rumour
func ParseRedditListing(body []byte) (*RedditListing, error) {
	var raw redditListing
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode reddit listing: %w", err)
	}

	listing := &RedditListing{After: raw.Data.After}
	for _, child := range raw.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		listing.Posts++
		if item, ok := parseRedditPost(child.Data); ok {
			listing.Items = append(listing.Items, item)
		}
	}
	return listing, nil
}

func parseRedditPost(p redditPost) (Item, bool) {
	m := leadingTagRe.FindStringSubmatchIndex(p.Title)
	if m == nil {
		return Item{}, false
	}

	source := strings.TrimSpace(p.Title[m[2]:m[3]])
	if redditSkipTags[strings.ToLower(source)] {
		return Item{}, false
	}

	text := anyTagRe.ReplaceAllString(p.Title[m[1]:], "")
	text = strings.Trim(whitespace.ReplaceAllString(text, " "), " -:—")
	if len(text) < minRedditChars || !redditTransferRe.MatchString(text) {
		return Item{}, false
	}

	sourceURL := p.URL
	if p.IsSelf {
		sourceURL = ""
		if p.Permalink != "" {
			sourceURL = "https://www.reddit.com" + p.Permalink
		}
	}

	item := Item{
		Text:        text,
		Publication: source,
		SourceURL:   sourceURL,
	}
	if p.CreatedUTC > 0 {
		t := time.Unix(int64(p.CreatedUTC), 0).UTC()
		item.Date = &t
	}
	return item, true
}
