package bandcamp

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const structuredDataSelector = `script[type="application/ld+json"]`

// LocateStructuredData returns the contents of every ld+json script block
// of an HTML page, in document order.
//
// Returns ErrNotFound when the page has no such block and ErrParse when
// the HTML cannot be read as a document.
func LocateStructuredData(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var blocks []string
	doc.Find(structuredDataSelector).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, s.Text())
	})

	if len(blocks) == 0 {
		return nil, ErrNotFound
	}
	return blocks, nil
}

// FirstStructuredData returns the first ld+json block of the page. Album
// and track pages both describe their subject in the first block.
func FirstStructuredData(html string) (string, error) {
	blocks, err := LocateStructuredData(html)
	if err != nil {
		return "", err
	}
	return blocks[0], nil
}
