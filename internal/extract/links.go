package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var waybackPrefix = regexp.MustCompile(`^https?://web\.archive\.org/web/\d+[/*]?`)

// ResolveLink resolves href against base. Anchors, javascript: and mailto:
// links and non-http results resolve to "".
func ResolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := parsed
	if base != nil {
		resolved = base.ResolveReference(parsed)
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}

// StripWayback removes an archive.org snapshot prefix, returning the
// original article URL
func StripWayback(u string) string {
	if loc := waybackPrefix.FindStringIndex(u); loc != nil {
		return u[loc[1]:]
	}
	return u
}
