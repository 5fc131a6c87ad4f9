package validation

import (
	"regexp"
	"strings"
)

// UsernamePattern defines the valid username format: alphanumeric, hyphens,
// underscores, dots.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// schemePattern matches an http or https scheme prefix, case-insensitively.
var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// ValidateUsername checks if a username matches the allowed pattern.
func ValidateUsername(username string) bool {
	if len(username) < 2 || len(username) > 32 {
		return false
	}
	return UsernamePattern.MatchString(username)
}

// HasScheme reports whether the raw submission carries an http(s) scheme.
func HasScheme(raw string) bool {
	return schemePattern.MatchString(raw)
}

// NormalizeURL trims the submission and prepends https:// when no http(s)
// scheme is present, so stored URLs are always absolute.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !HasScheme(raw) {
		return "https://" + raw
	}
	return raw
}

// TitleFromURL derives an upload title from the raw submission: the host
// portion when the submission carried a scheme, otherwise the raw string
// itself.
func TitleFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !HasScheme(raw) {
		return raw
	}
	stripped := schemePattern.ReplaceAllString(raw, "")
	host, _, _ := strings.Cut(stripped, "/")
	if host == "" {
		return raw
	}
	return host
}
