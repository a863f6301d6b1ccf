package fetch

import (
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// DecodedText returns the body converted to UTF-8 for display. The encoding
// comes from a BOM, the Content-Type charset, or an HTML <meta> declaration,
// in that order. Undeclared bodies that are already valid UTF-8 are returned
// unchanged. Body itself is never modified.
func (r *Response) DecodedText() string {
	if r == nil || len(r.Body) == 0 {
		return ""
	}
	enc, name, certain := charset.DetermineEncoding(r.Body, r.Header.Get("Content-Type"))
	if name == "utf-8" || (!certain && utf8.Valid(r.Body)) {
		return string(r.Body)
	}
	decoded, err := enc.NewDecoder().Bytes(r.Body)
	if err != nil {
		return string(r.Body)
	}
	return string(decoded)
}
