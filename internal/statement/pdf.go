package statement

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPages pulls plain text out of a PDF, one string per page. The page
// cap is a hard rejection, not a truncation.
func ExtractPages(data []byte, maxPages int) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	total := reader.NumPage()
	if maxPages > 0 && total > maxPages {
		return nil, fmt.Errorf("%w: PDF has %d pages, max allowed is %d", ErrTooManyPages, total, maxPages)
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	if strings.TrimSpace(strings.Join(pages, "")) == "" {
		return nil, fmt.Errorf("PDF contains no extractable text")
	}
	return pages, nil
}
