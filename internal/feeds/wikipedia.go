package feeds

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/JSmilg/veracity/internal/model"
)

var (
	footnoteRe   = regexp.MustCompile(`\[(?:\d+|nb \d+)\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Wikipedia reads the "List of English football transfers" pages
type Wikipedia struct {
	fetcher Fetcher
	urls    []string
	logger  *zap.Logger
	now     func() time.Time
}

// NewWikipedia creates the feed over the given list pages
func NewWikipedia(f Fetcher, urls []string, logger *zap.Logger) *Wikipedia {
	return &Wikipedia{fetcher: f, urls: urls, logger: logger, now: time.Now}
}

func (w *Wikipedia) Name() string { return SourceWikipedia }

// Transfers reads every page. Rows whose date cannot be parsed are dated
// today. A failing page is logged and skipped.
func (w *Wikipedia) Transfers(ctx context.Context) ([]model.ConfirmedTransfer, error) {
	var all []model.ConfirmedTransfer
	var lastErr error
	failed := 0
	for _, u := range w.urls {
		res, err := w.fetcher.Fetch(ctx, u)
		if err == nil {
			var transfers []model.ConfirmedTransfer
			transfers, err = ParseWikipedia(res.Body, u)
			if err == nil {
				for i := range transfers {
					if transfers[i].TransferDate == nil {
						transfers[i].TransferDate = today(w.now)
					}
				}
				w.logger.Debug("wikipedia page", zap.String("url", u), zap.Int("transfers", len(transfers)))
				all = append(all, transfers...)
				continue
			}
		}
		if ctx.Err() != nil {
			return all, ctx.Err()
		}
		w.logger.Warn("wikipedia page failed", zap.String("url", u), zap.Error(err))
		lastErr = err
		failed++
	}

	if len(w.urls) > 0 && failed == len(w.urls) {
		return nil, fmt.Errorf("all %d wikipedia pages failed: %w", failed, lastErr)
	}
	return all, nil
}

// ParseWikipedia reads every wikitable on the page. Columns are located
// from the header row, so tables with different layouts are handled.
func ParseWikipedia(body []byte, sourceURL string) ([]model.ConfirmedTransfer, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse wikipedia page: %w", err)
	}

	var transfers []model.ConfirmedTransfer
	for _, table := range findAll(doc, func(n *html.Node) bool {
		return isElement(n, "table") && hasClass(n, "wikitable")
	}) {
		transfers = append(transfers, parseWikitable(table, sourceURL)...)
	}
	return transfers, nil
}

type column string

const (
	colDate   column = "date"
	colPlayer column = "player"
	colFrom   column = "from"
	colTo     column = "to"
	colFee    column = "fee"
)

// columnMap assigns header positions. The first "date" header wins; for
// the others the last matching header wins.
func columnMap(headers []string) map[column]int {
	cols := make(map[column]int)
	for i, h := range headers {
		_, haveDate := cols[colDate]
		switch {
		case strings.Contains(h, "date") && !haveDate:
			cols[colDate] = i
		case strings.Contains(h, "player") || strings.Contains(h, "name"):
			cols[colPlayer] = i
		case strings.Contains(h, "from"):
			cols[colFrom] = i
		case strings.Contains(h, "to"):
			cols[colTo] = i
		case strings.Contains(h, "fee"):
			cols[colFee] = i
		}
	}
	return cols
}

type carried struct {
	remaining int
	text      string
}

func parseWikitable(table *html.Node, sourceURL string) []model.ConfirmedTransfer {
	rows := findAll(table, func(n *html.Node) bool { return isElement(n, "tr") })
	if len(rows) == 0 {
		return nil
	}

	var headers []string
	for _, c := range cells(rows[0]) {
		headers = append(headers, strings.ToLower(cellText(c)))
	}
	cols := columnMap(headers)

	_, hasPlayer := cols[colPlayer]
	_, hasFrom := cols[colFrom]
	_, hasTo := cols[colTo]
	if !hasPlayer || (!hasFrom && !hasTo) {
		return nil
	}

	active := make(map[int]carried)
	var transfers []model.ConfirmedTransfer

	for _, row := range rows[1:] {
		raw := cells(row)
		if len(raw) == 0 {
			continue
		}

		// Rebuild the full row, filling columns held by an earlier rowspan
		values := make([]string, len(headers))
		next := 0
		for col := range headers {
			if c, ok := active[col]; ok {
				values[col] = c.text
				if c.remaining <= 1 {
					delete(active, col)
				} else {
					active[col] = carried{remaining: c.remaining - 1, text: c.text}
				}
				continue
			}
			if next >= len(raw) {
				continue
			}
			cell := raw[next]
			next++
			values[col] = cellText(cell)
			if span, err := strconv.Atoi(attr(cell, "rowspan")); err == nil && span > 1 {
				active[col] = carried{remaining: span - 1, text: values[col]}
			}
		}

		get := func(c column) string {
			if i, ok := cols[c]; ok {
				return values[i]
			}
			return ""
		}

		player := get(colPlayer)
		if player == "" {
			continue
		}
		rawDate := get(colDate)
		transfers = append(transfers, model.ConfirmedTransfer{
			PlayerName:   player,
			FromClub:     get(colFrom),
			ToClub:       get(colTo),
			Fee:          get(colFee),
			TransferDate: ParseTransferDate(rawDate),
			RawDate:      rawDate,
			SourceURL:    sourceURL,
			Source:       SourceWikipedia,
		})
	}
	return transfers
}

// cells returns the th/td children of a row
func cells(row *html.Node) []*html.Node {
	var out []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "td") || isElement(c, "th") {
			out = append(out, c)
		}
	}
	return out
}

// cellText returns a cell's text without <sup> footnote markers
func cellText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isElement(n, "sup") || isElement(n, "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	text := footnoteRe.ReplaceAllString(buf.String(), "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if predicate(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
