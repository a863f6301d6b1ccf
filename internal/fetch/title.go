package fetch

import (
	"bytes"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxTitleRunes = 60

// Title returns the whitespace-collapsed <title> of an HTML response, or ""
// when the response is not HTML or has no title. The body is not modified.
func (r *Response) Title() string {
	if r == nil || len(r.Body) == 0 || !isHTML(r.Header.Get("Content-Type")) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		return ""
	}
	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes-1]) + "…"
	}
	return title
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
