package ingest

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/recipe-web-parser/internal/common"
	"github.com/dtnitsch/recipe-web-parser/pkg/caching"
	"github.com/dtnitsch/recipe-web-parser/pkg/config"
	"github.com/dtnitsch/recipe-web-parser/pkg/db"
	"github.com/dtnitsch/recipe-web-parser/pkg/fetcher"
	"github.com/dtnitsch/recipe-web-parser/pkg/notify"
	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON stderr logger shared by all commands.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case c.Bool("quiet"):
		logLevel = slog.LevelError
	case c.Bool("verbose"):
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func ImportAction(c *cli.Context) error {
	logger := NewLogger(c)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 2)
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("db") {
		cfg.Database = c.String("db")
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open database: %v", err), 2)
	}
	defer database.Close()

	opts := Options{
		URLs:          common.SplitURLs(c.String("urls")),
		Workers:       cfg.Workers,
		Replace:       c.Bool("replace"),
		IncludeRecipe: c.Bool("full"),
		Notify:        c.Bool("notify"),
	}
	opts.URLs = append(opts.URLs, c.Args().Slice()...)

	if c.Bool("retry-review") {
		if len(opts.URLs) > 0 {
			return cli.Exit("Error: --retry-review cannot be combined with --urls", 1)
		}
		pending, err := database.ListNeedsReview()
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to list recipes needing review: %v", err), 2)
		}
		if len(pending) == 0 {
			fmt.Println("No recipes need review")
			return nil
		}
		for _, r := range pending {
			opts.URLs = append(opts.URLs, r.URL)
		}
		opts.Replace = true
		fmt.Fprintf(os.Stderr, "Retrying %d recipes that need review\n", len(pending))
	}

	if len(opts.URLs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  recipe-web-parser import --urls "https://example.com/pie,https://example.org/soup"`)
		fmt.Fprintln(os.Stderr, `  recipe-web-parser import --retry-review          # Re-import recipes flagged for review`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: recipe-web-parser import --help")
		return cli.Exit("", 1)
	}

	pageFetcher, err := newFetcher(c, cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var mailer *notify.Mailer
	if opts.Notify {
		mailer = notify.NewMailer(cfg.SMTP, logger)
	}

	out := newPipeline(logger, pageFetcher, database, mailer).execute(c.Context, opts)

	data, err := common.Marshal(out, c.String("format"))
	if err != nil {
		logger.Error("failed to marshal final output", "error", err)
		return cli.Exit("", 2)
	}
	fmt.Println(string(data))

	if code := out.Stats.ExitCode(); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

func newFetcher(c *cli.Context, cfg config.Config, logger *slog.Logger) (*fetcher.Fetcher, error) {
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return nil, err
	}

	opts := fetcher.Options{
		Timeout:    timeout,
		UserAgent:  cfg.HTTP.UserAgent,
		RetryCount: cfg.HTTP.RetryCount,
	}
	if c.Bool("verbose") {
		opts.Logger = logger
	}

	if cfg.Cache.Dir != "" {
		ttl, err := cfg.CacheTTL()
		if err != nil {
			return nil, err
		}
		cache, err := caching.NewCache(cfg.Cache.Dir, ttl)
		if err != nil {
			return nil, err
		}
		opts.Cache = cache
		opts.Refresh = c.Bool("force-fetch")
	}

	return fetcher.New(opts), nil
}
