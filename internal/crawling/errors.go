// Package crawling scrapes the saramin job board: listing search results
// and posting detail pages.
package crawling

import "fmt"

// ParseError indicates the scraped HTML did not contain the expected
// structure. Site markup changes surface here.
type ParseError struct {
	URL     string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s: %s", e.URL, e.Message)
}

// DetailURLError indicates a posting detail URL is missing the record
// identifier needed to reach the detail iframe.
type DetailURLError struct {
	URL string
}

func (e *DetailURLError) Error() string {
	return fmt.Sprintf("detail URL %s has no rec_idx parameter", e.URL)
}
