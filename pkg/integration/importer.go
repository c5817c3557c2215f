// Package integration turns a recipe page URL into a models.Recipe.
//
// The importer fetches the page, looks for a schema.org Recipe in its
// ld+json blocks and normalizes it. Pages without a usable recipe still
// produce a link-only record so the URL is never lost.
package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/metadata"
	"github.com/dtnitsch/recipe-web-parser/pkg/normalizer"
)

// Outcome values reported for each import.
const (
	OutcomeIntegrated  = "integrated"
	OutcomeNeedsReview = "needs_review"
	OutcomeLinkOnly    = "link_only"
)

// ErrInvalidURL is returned when the input is not an absolute URL.
var ErrInvalidURL = errors.New("invalid recipe url")

// blockedTitles are page titles served by bot walls instead of the recipe.
var blockedTitles = map[string]struct{}{
	"403 Forbidden":                        {},
	"Access to this page has been denied.": {},
}

// FetchError wraps a failure of the page fetch collaborator.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PageFetcher retrieves a page and its ld+json text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*models.Page, error)
}

// Importer is safe for concurrent use.
type Importer struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

func NewImporter(fetcher PageFetcher, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{fetcher: fetcher, logger: logger}
}

// Import fetches rawURL and returns either a fully normalized recipe or a
// link-only record. Only an invalid URL or a fetch failure is an error.
func (im *Importer) Import(ctx context.Context, rawURL string) (*models.Recipe, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	page, err := im.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	if !page.HasMetadataBlocks() {
		im.logger.Debug("no ld+json blocks", "url", rawURL, "status", page.StatusCode)
		return linkOnly(rawURL, page.Title, false), nil
	}

	found := metadata.Locate(page.LDJSON)
	if !found.Found {
		im.logger.Debug("no recipe object located",
			"url", rawURL,
			"recipe_type_tag", found.HasRecipeTypeTag)
		return linkOnly(rawURL, page.Title, found.HasRecipeTypeTag), nil
	}

	recipe := normalizer.Normalize(found.Recipe)
	recipe.URL = rawURL
	return &recipe, nil
}

// Outcome classifies an imported recipe.
func Outcome(r *models.Recipe) string {
	switch {
	case r.IsIntegrated:
		return OutcomeIntegrated
	case r.NeedsReview():
		return OutcomeNeedsReview
	default:
		return OutcomeLinkOnly
	}
}

func linkOnly(rawURL, title string, hasRecipeMetadata bool) *models.Recipe {
	return models.NewLinkRecipe(rawURL, cleanTitle(title), hasRecipeMetadata)
}

func cleanTitle(title string) string {
	if _, blocked := blockedTitles[title]; blocked {
		return ""
	}
	return title
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidURL, rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w %q: must be absolute with a host", ErrInvalidURL, rawURL)
	}
	return nil
}
