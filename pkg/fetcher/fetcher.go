package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/caching"
	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	ldJSONSelector = `script[type="application/ld+json"]`
)

type Options struct {
	Timeout    time.Duration
	UserAgent  string
	RetryCount int

	// Cache is optional. When set, fresh entries are served without a request
	// and successful responses are stored.
	Cache *caching.Cache

	// Refresh drops cached entries before fetching so every page is
	// requested again. The new responses are still cached.
	Refresh bool

	// Logger receives per-request debug lines. Nil disables them.
	Logger *slog.Logger
}

type Fetcher struct {
	client  *resty.Client
	cache   *caching.Cache
	refresh bool
	logger  *slog.Logger
}

func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	client.SetRetryCount(opts.RetryCount)

	logger := opts.Logger
	if logger != nil {
		logRequests(client, logger)
	} else {
		logger = slog.Default()
	}

	return &Fetcher{client: client, cache: opts.Cache, refresh: opts.Refresh, logger: logger}
}

// Fetch returns the parsed page for url. Every HTTP response is parsed,
// including 4xx and 5xx ones, because bot walls still carry a useful title.
// Only transport failures are returned as errors.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.Page, error) {
	if f.cache != nil && f.refresh {
		if err := f.cache.Invalidate(pageURL); err != nil {
			f.logger.Warn("Failed to drop cached page", "url", pageURL, "error", err)
		}
	} else if f.cache != nil {
		if body, ok := f.cache.Get(pageURL); ok {
			page, err := ParseHTML(pageURL, body)
			if err == nil {
				page.FromCache = true
				page.StatusCode = 200
				return page, nil
			}
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}

	page, err := ParseHTML(pageURL, resp.Body())
	if err != nil {
		return nil, err
	}
	page.StatusCode = resp.StatusCode()
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		if final := raw.Request.URL.String(); final != pageURL {
			page.FinalURL = final
		}
	}

	if f.cache != nil && resp.IsSuccess() {
		if err := f.cache.Set(pageURL, resp.Body()); err != nil {
			f.logger.Warn("Failed to cache page", "url", pageURL, "error", err)
		}
	}
	return page, nil
}

// ParseHTML extracts the title, the ld+json text and a readability excerpt.
// Each ld+json script is trimmed and the scripts are joined with no separator.
func ParseHTML(pageURL string, html []byte) (*models.Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var ld strings.Builder
	doc.Find(ldJSONSelector).Each(func(_ int, s *goquery.Selection) {
		ld.WriteString(strings.TrimSpace(s.Text()))
	})

	return &models.Page{
		URL:     pageURL,
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		LDJSON:  ld.String(),
		Excerpt: excerpt(pageURL, html),
	}, nil
}

// excerpt is best effort; pages readability cannot handle get none.
func excerpt(pageURL string, html []byte) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Excerpt)
}

func logRequests(client *resty.Client, logger *slog.Logger) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug("start request", "method", req.Method, "url", req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.Debug("request finished",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"duration", res.Time())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		logger.Debug("request failed", "method", req.Method, "url", req.URL, "error", err)
	})
}
