// Package normalize trims and tidies user-supplied strings before they are
// validated or stored.
package normalize

import "strings"

// Email trims surrounding whitespace. Case is preserved because emails are
// matched case-sensitively.
func Email(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// LocalPart returns the part of an email before the first "@", or the
// whole string when there is none.
func LocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// StringPtr applies fn to *p when p is non-nil.
func StringPtr(p *string, fn func(string) string) *string {
	if p == nil {
		return nil
	}
	v := fn(*p)
	return &v
}
