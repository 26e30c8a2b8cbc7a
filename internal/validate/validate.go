// Package validate holds the pure input checks and sanitization applied to
// send requests. Nothing here touches the network or mutates state.
package validate

import (
	"html"
	"regexp"
	"strings"
)

// emailRE is anchored at the start only, matching the behavior of the
// original matcher: an address with a valid-looking prefix followed by
// trailing garbage still passes. Syntactic check only, no DNS/MX lookup.
var emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRE.MatchString(s)
}

// NonEmptyMessage reports whether s contains anything besides whitespace.
func NonEmptyMessage(s string) bool {
	return strings.TrimSpace(s) != ""
}

const maxMessageLen = 10000

// Sanitize trims and HTML-escapes a message body so it cannot inject markup
// if rendered by an email client or dashboard. Applied to the message only;
// the email field is validated, not escaped.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = html.EscapeString(s)
	// Limit length to prevent abuse
	if len(s) > maxMessageLen {
		s = s[:maxMessageLen]
	}
	return s
}
