package nobil

import (
	"html"
	"regexp"
	"strings"
)

var (
	brRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe = regexp.MustCompile(`<[^>]*>`)
	wsRe  = regexp.MustCompile(`[ \t\x{00A0}]+`)
)

// cleanHTML converts provider free-text that may contain HTML markup into
// plain text: line breaks become newlines, remaining tags are stripped, and
// entities are unescaped. Plain input passes through unchanged apart from
// whitespace trimming.
func cleanHTML(s string) string {
	s = brRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanHTMLPtr applies cleanHTML to an optional field, keeping nil as "".
func cleanHTMLPtr(s *string) string {
	if s == nil {
		return ""
	}
	return cleanHTML(*s)
}
