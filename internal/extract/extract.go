package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlaceholderTitle is used when a page has no usable <title>.
const PlaceholderTitle = "Untitled"

// Metadata is what we managed to pull out of a fetched page.
type Metadata struct {
	Title       string
	Description string
}

// FromHTML extracts page metadata. It never fails: unparseable or
// empty input yields the placeholder title. Whitespace runs in the
// title are collapsed to single spaces.
func FromHTML(body string) Metadata {
	meta := Metadata{Title: PlaceholderTitle}
	if strings.TrimSpace(body) == "" {
		return meta
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return meta
	}

	if title := collapseSpace(doc.Find("title").First().Text()); title != "" {
		meta.Title = title
	}

	doc.Find(`meta[name="description"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if content, ok := sel.Attr("content"); ok {
			if desc := collapseSpace(content); desc != "" {
				meta.Description = desc
				return false
			}
		}
		return true
	})

	return meta
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
