package pages

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Report describes how a page will behave once served.
type Report struct {
	Path string
	// HasPlaceholder is true when the placeholder appears anywhere in the file.
	HasPlaceholder bool
	// InScript is true when the placeholder sits inside a <script> element.
	InScript bool
}

// Inspect parses the page at path and locates the placeholder. It is a
// startup diagnostic only; serving stays lenient whatever it reports.
func Inspect(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: path, HasPlaceholder: bytes.Contains(raw, []byte(Placeholder))}
	if !report.HasPlaceholder {
		return report, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		report.InScript = strings.Contains(s.Text(), Placeholder)
		return !report.InScript
	})

	return report, nil
}
