package controller

import "strings"

// DefaultScheme is prepended to input that carries no scheme.
const DefaultScheme = "https://"

// NormalizeURL trims surrounding whitespace and prepends DefaultScheme when
// raw has no "scheme://" prefix. Empty input stays empty.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if hasScheme(s) {
		return s
	}
	return DefaultScheme + s
}

// hasScheme reports whether s starts with an RFC 3986 scheme followed by "://".
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j, c := range s[:i] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
