package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/recipe-web-parser/internal/common"
	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/db"
	"github.com/dtnitsch/recipe-web-parser/pkg/integration"
	"github.com/dtnitsch/recipe-web-parser/pkg/mapreduce"
	"github.com/dtnitsch/recipe-web-parser/pkg/notify"
)

// pipeline wires one import run: import, persist, report, notify.
type pipeline struct {
	logger   *slog.Logger
	importer *integration.Importer
	recorder *pageRecorder
	database *db.DB
	mailer   *notify.Mailer // nil disables notifications
}

func newPipeline(logger *slog.Logger, fetcher integration.PageFetcher, database *db.DB, mailer *notify.Mailer) *pipeline {
	recorder := newPageRecorder(fetcher)
	return &pipeline{
		logger:   logger,
		importer: integration.NewImporter(recorder, logger),
		recorder: recorder,
		database: database,
		mailer:   mailer,
	}
}

func (p *pipeline) execute(ctx context.Context, opts Options) *FinalOutput {
	startTime := time.Now()

	valid, invalid := common.SanitizeAndValidateURLs(opts.URLs)
	if len(invalid) > 0 {
		p.logger.Warn("Skipping malformed URLs", "count", len(invalid))
	}

	results := run(ctx, p.logger, p.importer, p.recorder, valid, opts.Workers)
	for _, raw := range invalid {
		results = append(results, Result{
			URL:       raw,
			Outcome:   outcomeFailed,
			Error:     fmt.Errorf("%w %q: malformed even after cleanup", integration.ErrInvalidURL, raw),
			ErrorType: ErrorTypeInvalidURL,
		})
	}

	p.persist(results, opts.Replace)

	out := buildOutput(results, opts.IncludeRecipe)
	if opts.Notify {
		out.Stats.ReviewNotified = p.notifyReview(ctx, results)
	}
	out.Stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	return out
}

// persist stores each imported recipe and logs an attempt for every URL.
// Store failures turn the result into a failed one.
func (p *pipeline) persist(results []Result, replace bool) {
	for i := range results {
		r := &results[i]
		if !r.Failed() {
			id, err := p.store(r.Recipe, replace)
			switch {
			case errors.Is(err, db.ErrDuplicateRecipe):
				r.Error, r.ErrorType = err, ErrorTypeDuplicate
			case err != nil:
				r.Error, r.ErrorType = err, ErrorTypeStore
			default:
				r.RecipeID = id
			}
			if err != nil {
				p.logger.Warn("Failed to store recipe", "url", r.URL, "error", err)
			}
		}

		outcome, errMsg := r.Outcome, ""
		if r.Failed() {
			outcome, errMsg = outcomeFailed, r.Error.Error()
		}
		if err := p.database.RecordAttempt(r.URL, outcome, r.ErrorType, errMsg); err != nil {
			p.logger.Warn("Failed to record import attempt", "url", r.URL, "error", err)
		}
	}
}

func (p *pipeline) store(recipe *models.Recipe, replace bool) (int64, error) {
	if replace {
		return p.database.ReplaceRecipe(recipe)
	}
	return p.database.InsertRecipe(recipe)
}

// notifyReview mails the recipes of this run that need review. It reports
// whether a mail went out.
func (p *pipeline) notifyReview(ctx context.Context, results []Result) bool {
	if p.mailer == nil || !p.mailer.Enabled() {
		p.logger.Warn("Review notification requested but SMTP is not configured")
		return false
	}

	var review []*models.Recipe
	excerpts := make(map[string]string)
	for _, r := range results {
		if r.Failed() || !r.Recipe.NeedsReview() {
			continue
		}
		review = append(review, r.Recipe)
		if r.Excerpt != "" {
			excerpts[r.URL] = r.Excerpt
		}
	}
	if len(review) == 0 {
		return false
	}

	if err := p.mailer.SendReviewReport(ctx, review, excerpts); err != nil {
		p.logger.Error("Failed to send review report", "error", err)
		return false
	}
	return true
}

const topTagCount = 10

func buildOutput(results []Result, includeRecipe bool) *FinalOutput {
	out := &FinalOutput{Results: make([]ResultOutput, 0, len(results))}
	out.Stats.TotalURLs = len(results)
	var tagCounts []map[string]int

	for _, r := range results {
		ro := ResultOutput{
			URL:       r.URL,
			Outcome:   r.Outcome,
			RecipeID:  r.RecipeID,
			FromCache: r.FromCache,
		}
		if r.Recipe != nil {
			ro.Title = r.Recipe.Title
			if includeRecipe {
				ro.Recipe = r.Recipe
			}
		}

		if r.Failed() {
			out.Stats.Failed++
			ro.Status = "failed"
			ro.Outcome = outcomeFailed
			ro.Error = r.Error.Error()
			ro.ErrorType = r.ErrorType
			out.Results = append(out.Results, ro)
			continue
		}

		ro.Status = "success"
		tagCounts = append(tagCounts, mapreduce.Map(r.Recipe))
		switch r.Outcome {
		case integration.OutcomeIntegrated:
			out.Stats.Integrated++
		case integration.OutcomeNeedsReview:
			out.Stats.NeedsReview++
		default:
			out.Stats.LinkOnly++
		}
		out.Results = append(out.Results, ro)
	}

	out.Stats.TopTags = mapreduce.Top(mapreduce.Reduce(tagCounts), topTagCount)

	switch {
	case out.Stats.Failed == 0:
		out.Status = "success"
	case out.Stats.Failed == out.Stats.TotalURLs:
		out.Status = "failure"
	default:
		out.Status = "partial_failure"
	}
	return out
}
