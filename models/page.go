package models

import "strings"

// Page is what the fetcher hands to the importer for a single URL.
type Page struct {
	URL        string `json:"url"`
	FinalURL   string `json:"final_url,omitempty"` // after redirects
	StatusCode int    `json:"status_code,omitempty"`
	Title      string `json:"title"`

	// LDJSON is the text of every application/ld+json script on the page,
	// concatenated in document order with no separator.
	LDJSON string `json:"ld_json,omitempty"`

	// Excerpt is a readability summary of the page, used for review reports only.
	Excerpt   string `json:"excerpt,omitempty"`
	FromCache bool   `json:"from_cache,omitempty"`
}

// HasMetadataBlocks reports whether any ld+json script had content.
func (p *Page) HasMetadataBlocks() bool {
	return strings.TrimSpace(p.LDJSON) != ""
}
