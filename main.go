package main

import (
	"fmt"
	"log"
	"os"

	dbcmd "github.com/dtnitsch/recipe-web-parser/internal/db"
	"github.com/dtnitsch/recipe-web-parser/internal/ingest"
	"github.com/dtnitsch/recipe-web-parser/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite database path (default: recipes.db next to the binary)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "Output format: json or yaml",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recipe-web-parser",
		Usage: "Import recipes from web pages via their schema.org JSON-LD",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Fetch recipe pages, normalize and store them",
				ArgsUsage: "[url...]",
				Action:    ingest.ImportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "urls", Usage: "Comma-separated list of URLs to import"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "Number of concurrent workers"},
					formatFlag(),
					dbFlag(),
					&cli.StringFlag{Name: "config", Usage: "json5 config file"},
					&cli.BoolFlag{Name: "force-fetch", Usage: "Drop cached pages and fetch them again"},
					&cli.BoolFlag{Name: "replace", Usage: "Overwrite recipes already stored for the same URL"},
					&cli.BoolFlag{Name: "retry-review", Usage: "Re-import every recipe that needs review"},
					&cli.BoolFlag{Name: "notify", Usage: "Email the recipes that need review (requires smtp config)"},
					&cli.BoolFlag{Name: "full", Usage: "Include the full recipe in the output"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Debug logging, including HTTP requests"},
				},
			},
			{
				Name:  "db",
				Usage: "Inspect stored recipes",
				Subcommands: []*cli.Command{
					{
						Name:   "recipes",
						Usage:  "List stored recipes, newest first",
						Action: dbcmd.RecipesAction,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows (0 for all)"},
						},
					},
					{
						Name:      "show",
						Usage:     "Show one recipe",
						ArgsUsage: "<id|url>",
						Action:    dbcmd.ShowAction,
						Flags:     []cli.Flag{dbFlag(), formatFlag()},
					},
					{
						Name:   "review",
						Usage:  "List recipes whose metadata could not be parsed",
						Action: dbcmd.ReviewAction,
						Flags:  []cli.Flag{dbFlag()},
					},
					{
						Name:      "attempts",
						Usage:     "Show the import log",
						ArgsUsage: "[url]",
						Action:    dbcmd.AttemptsAction,
						Flags:     []cli.Flag{dbFlag()},
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
