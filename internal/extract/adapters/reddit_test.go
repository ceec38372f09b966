package adapters

import (
	"strings"
	"testing"
	"time"
)

const redditFixture = `{
  "kind": "Listing",
  "data": {
    "after": "t3_next",
    "children": [
      {"kind": "t3", "data": {"title": "[Fabrizio Romano] Chelsea agree deal to sign Jadon Sancho from Manchester United", "url": "https://x.com/FabrizioRomano/status/1", "is_self": false, "permalink": "/r/soccer/comments/a1/", "created_utc": 1700000000}},
      {"kind": "t3", "data": {"title": "[Match Thread] Arsenal vs Chelsea transfer window special", "url": "https://www.reddit.com/r/soccer/comments/a2/", "is_self": true}},
      {"kind": "t3", "data": {"title": "Liverpool agree fee for Florian Wirtz", "url": "https://example.com/wirtz"}},
      {"kind": "t3", "data": {"title": "[Sky] Deal agreed", "url": "https://example.com/short"}},
      {"kind": "t3", "data": {"title": "[BBC Sport] Haaland scores a hat-trick against Everton", "url": "https://example.com/haaland"}},
      {"kind": "t3", "data": {"title": "[David Ornstein] Arsenal set to complete signing of Martin Zubimendi [Official]", "url": "https://www.reddit.com/r/soccer/comments/a6/", "is_self": true, "permalink": "/r/soccer/comments/a6/zubimendi/", "created_utc": 1700003600.0}},
      {"kind": "t1", "data": {"title": "[Fabrizio Romano] a comment, not a post, about a transfer deal"}}
    ]
  }
}`

func TestParseRedditListing(t *testing.T) {
	listing, err := ParseRedditListing([]byte(redditFixture))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if listing.After != "t3_next" {
		t.Errorf("Expected after cursor t3_next, got %q", listing.After)
	}
	if listing.Posts != 6 {
		t.Errorf("Expected 6 link posts, got %d", listing.Posts)
	}
	if len(listing.Items) != 2 {
		t.Fatalf("Expected 2 transfer items, got %d: %+v", len(listing.Items), listing.Items)
	}

	first := listing.Items[0]
	if first.Publication != "Fabrizio Romano" {
		t.Errorf("Expected publication Fabrizio Romano, got %q", first.Publication)
	}
	if first.Text != "Chelsea agree deal to sign Jadon Sancho from Manchester United" {
		t.Errorf("Unexpected text %q", first.Text)
	}
	if first.SourceURL != "https://x.com/FabrizioRomano/status/1" {
		t.Errorf("Expected linked URL, got %q", first.SourceURL)
	}
	if first.Date == nil || !first.Date.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Expected post date, got %v", first.Date)
	}

	self := listing.Items[1]
	if self.Text != "Arsenal set to complete signing of Martin Zubimendi" {
		t.Errorf("Expected inner tags stripped, got %q", self.Text)
	}
	if self.SourceURL != "https://www.reddit.com/r/soccer/comments/a6/zubimendi/" {
		t.Errorf("Expected permalink for self post, got %q", self.SourceURL)
	}
}

func TestParseRedditListing_Invalid(t *testing.T) {
	if _, err := ParseRedditListing([]byte("<html>rate limited</html>")); err == nil {
		t.Error("Expected error for non-JSON body")
	}
}

func TestRedditPageURL(t *testing.T) {
	got := RedditPageURL("https://www.reddit.com/r/soccer/new.json", 100, "")
	if got != "https://www.reddit.com/r/soccer/new.json?limit=100&raw_json=1" {
		t.Errorf("Unexpected first page URL %s", got)
	}

	got = RedditPageURL("https://www.reddit.com/r/soccer/new.json", 100, "t3_abc")
	if !strings.Contains(got, "after=t3_abc") {
		t.Errorf("Expected after cursor in %s", got)
	}
}
