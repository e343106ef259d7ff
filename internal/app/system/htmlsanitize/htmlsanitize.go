// Package htmlsanitize strips markup from free-text directory fields.
//
// Directory records are rendered by browser clients, so names and addresses
// are reduced to plain text before they are stored. The result is unescaped
// again: the API returns JSON, and clients are expected to escape on render.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element. bluemonday policies are safe for concurrent
// use once built.
var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML elements from s and returns the remaining text.
// Script and style bodies are dropped entirely.
func PlainText(s string) string {
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(strict.Sanitize(s))
}

// PlainTextPtr applies PlainText to *p when p is non-nil.
func PlainTextPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := PlainText(*p)
	return &v
}

// IsPlainText reports whether s has nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}
