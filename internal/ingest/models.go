package ingest

import (
	"github.com/dtnitsch/recipe-web-parser/models"
)

// Error types reported per URL.
const (
	ErrorTypeInvalidURL = "invalid_url"
	ErrorTypeFetch      = "fetch_error"
	ErrorTypeImport     = "import_error"
	ErrorTypeDuplicate  = "duplicate"
	ErrorTypeStore      = "store_error"
)

// outcomeFailed is recorded for URLs that produced no stored recipe.
const outcomeFailed = "failed"

type Job struct {
	Index int
	URL   string
}

// Result holds the outcome of a processed job.
type Result struct {
	Index     int
	URL       string
	Recipe    *models.Recipe
	Outcome   string
	Excerpt   string
	FromCache bool
	RecipeID  int64
	Error     error
	ErrorType string
}

func (r Result) Failed() bool { return r.Error != nil }

// Options controls one import run.
type Options struct {
	URLs          []string
	Workers       int
	Replace       bool // overwrite recipes already stored for the same URL
	IncludeRecipe bool // embed the full recipe in the output
	Notify        bool
}

// ResultOutput is the structured output for a single URL.
type ResultOutput struct {
	URL       string         `json:"url" yaml:"url"`
	Status    string         `json:"status" yaml:"status"`
	Outcome   string         `json:"outcome" yaml:"outcome"`
	RecipeID  int64          `json:"recipe_id,omitempty" yaml:"recipe_id,omitempty"`
	Title     string         `json:"title,omitempty" yaml:"title,omitempty"`
	FromCache bool           `json:"from_cache,omitempty" yaml:"from_cache,omitempty"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType string         `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Recipe    *models.Recipe `json:"recipe,omitempty" yaml:"recipe,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status  string         `json:"status" yaml:"status"`
	Results []ResultOutput `json:"results" yaml:"results"`
	Stats   Stats          `json:"stats" yaml:"stats"`
}

type Stats struct {
	TotalURLs        int      `json:"total_urls" yaml:"total_urls"`
	Integrated       int      `json:"integrated" yaml:"integrated"`
	NeedsReview      int      `json:"needs_review" yaml:"needs_review"`
	LinkOnly         int      `json:"link_only" yaml:"link_only"`
	Failed           int      `json:"failed" yaml:"failed"`
	ReviewNotified   bool     `json:"review_notified,omitempty" yaml:"review_notified,omitempty"`
	TopTags          []string `json:"top_tags,omitempty" yaml:"top_tags,omitempty"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
}

// ExitCode is 0 on success, 1 when some URLs failed and 2 when all did.
func (s Stats) ExitCode() int {
	switch {
	case s.Failed == 0:
		return 0
	case s.Failed == s.TotalURLs:
		return 2
	default:
		return 1
	}
}
