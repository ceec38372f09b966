package adapters

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func mustParse(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestRegistry_FindAdapter(t *testing.T) {
	r := NewRegistry()
	if got := r.FindAdapter("https://www.bbc.com/sport/football/articles/c1", "text/html").Name(); got != "gossip" {
		t.Errorf("Expected gossip adapter, got %s", got)
	}
	if got := r.FindAdapter("https://www.theguardian.com/football/x", "text/html").Name(); got != "generic" {
		t.Errorf("Expected generic adapter, got %s", got)
	}
}

func TestBaseAdapter_ExtractText(t *testing.T) {
	var b BaseAdapter
	doc := mustParse(t, "<p>Arsenal <b>agree</b>\n\n fee<script>var x = 1;</script> for Rice</p>")
	p := b.FindFirst(doc, element("p"))
	if got := b.ExtractText(p); got != "Arsenal agree fee for Rice" {
		t.Errorf("Expected collapsed text, got %q", got)
	}
}
