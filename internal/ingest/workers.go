package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/integration"
)

// pageRecorder keeps the excerpt and cache flag of every fetched page so the
// run report and the review mail can use them after Import returns.
type pageRecorder struct {
	next  integration.PageFetcher
	mu    sync.Mutex
	pages map[string]*models.Page
}

func newPageRecorder(next integration.PageFetcher) *pageRecorder {
	return &pageRecorder{next: next, pages: make(map[string]*models.Page)}
}

func (r *pageRecorder) Fetch(ctx context.Context, url string) (*models.Page, error) {
	page, err := r.next.Fetch(ctx, url)
	if err == nil {
		r.mu.Lock()
		r.pages[url] = page
		r.mu.Unlock()
	}
	return page, err
}

func (r *pageRecorder) page(url string) (*models.Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[url]
	return p, ok
}

// run imports urls on workerCount goroutines and returns results in input order.
func run(ctx context.Context, logger *slog.Logger, importer *integration.Importer, recorder *pageRecorder, urls []string, workerCount int) []Result {
	if workerCount < 1 {
		workerCount = 1
	}

	logger.Info("Starting concurrent import phase", "url_count", len(urls), "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, importer, recorder, &wg, jobs, results)
	}

	for i, u := range urls {
		jobs <- Job{Index: i, URL: u}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All import workers finished")

	ordered := make([]Result, len(urls))
	for result := range results {
		ordered[result.Index] = result
	}
	return ordered
}

func worker(ctx context.Context, id int, logger *slog.Logger, importer *integration.Importer, recorder *pageRecorder, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("Worker started job", "worker_id", id, "url", job.URL)
		result := Result{Index: job.Index, URL: job.URL}

		recipe, err := importer.Import(ctx, job.URL)
		if err != nil {
			logger.Error("Error importing recipe", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = classify(err)
			result.Outcome = outcomeFailed
			results <- result
			continue
		}

		result.Recipe = recipe
		result.Outcome = integration.Outcome(recipe)
		if page, ok := recorder.page(job.URL); ok {
			result.Excerpt = page.Excerpt
			result.FromCache = page.FromCache
		}
		logger.Info("Imported recipe", "worker_id", id, "url", job.URL, "outcome", result.Outcome)
		results <- result
	}
}

func classify(err error) string {
	var fetchErr *integration.FetchError
	switch {
	case errors.Is(err, integration.ErrInvalidURL):
		return ErrorTypeInvalidURL
	case errors.As(err, &fetchErr):
		return ErrorTypeFetch
	default:
		return ErrorTypeImport
	}
}
