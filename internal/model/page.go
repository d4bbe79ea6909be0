package model

import "github.com/ecodena/greenscan/internal/keyword"

// PageRecord holds everything extracted from one fetched, analyzed page.
// It combines structural metrics (sizes, element counts, fonts) with the
// keyword scores of the page's plain text.
//
// JSON field names match the column names expected by downstream
// consumers of the per-page table.
type PageRecord struct {
	// URL is the absolute URL the page was fetched from.
	URL string `json:"url"`

	// Title is the page title, empty when the page has no <title>.
	Title string `json:"title"`

	// HTMLKB is the raw HTML size in kilobytes (UTF-8 byte length /
	// 1024), rounded to one decimal.
	HTMLKB float64 `json:"html_kb"`

	// NumImages counts <img> elements.
	NumImages int `json:"num_images"`

	// NumScripts counts <script> elements, inline scripts included.
	NumScripts int `json:"num_scripts"`

	// NumStylesheets counts <link> elements whose rel attribute set
	// contains "stylesheet".
	NumStylesheets int `json:"num_stylesheets"`

	// HeadingsH1, HeadingsH2 and HeadingsH3 count heading elements.
	HeadingsH1 int `json:"headings_h1"`
	HeadingsH2 int `json:"headings_h2"`
	HeadingsH3 int `json:"headings_h3"`

	// NumInlineFonts is the number of distinct font-family values
	// declared in inline style attributes.
	NumInlineFonts int `json:"num_inline_fonts"`

	// FontResources are the distinct hrefs of <link> elements that
	// reference font resources, in first-seen order.
	FontResources []string `json:"font_resources,omitempty"`

	// Text is the extracted plain text of the page. Excluded from JSON
	// to keep serialized reports small; aggregation reads it in memory.
	Text string `json:"-"`

	// Scores holds the keyword hit counts and 0-100 scores of Text for
	// the three taxonomies.
	Scores keyword.Scores `json:"scores"`
}
