package db

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/internal/common"
	dbpkg "github.com/dtnitsch/recipe-web-parser/pkg/db"
	"github.com/urfave/cli/v2"
)

func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// RecipesAction lists stored recipes, newest first.
func RecipesAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	recipes, err := database.ListRecipes(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}
	printRecipeTable(os.Stdout, recipes)
	return nil
}

// ReviewAction lists recipes whose page declared a Recipe that could not be parsed.
func ReviewAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	recipes, err := database.ListNeedsReview()
	if err != nil {
		return fmt.Errorf("failed to list recipes needing review: %w", err)
	}
	printRecipeTable(os.Stdout, recipes)
	if len(recipes) > 0 {
		fmt.Printf("\nTip: Use 'recipe-web-parser import --retry-review' to re-import them\n")
	}
	return nil
}

// ShowAction prints one recipe, looked up by id or URL.
func ShowAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("recipe id or url required. Run 'recipe-web-parser db recipes' to list them")
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	record, err := GetRecipeByIDOrURL(c.Args().First(), database)
	if err != nil {
		return err
	}

	data, err := common.Marshal(record, c.String("format"))
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// AttemptsAction prints the import log, optionally for a single URL.
func AttemptsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	attempts, err := database.ListAttempts(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}
	printAttemptTable(os.Stdout, attempts)
	return nil
}

func printRecipeTable(w io.Writer, recipes []dbpkg.RecipeRecord) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return
	}

	fmt.Fprintf(w, "%-6s %-20s %-13s %-6s %-30s %-24s %s\n",
		"ID", "Created", "Outcome", "Rating", "Title", "Tags", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 140))

	for _, r := range recipes {
		fmt.Fprintf(w, "%-6d %-20s %-13s %-6.1f %-30s %-24s %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			outcomeOf(r),
			r.Rating,
			truncate(r.Title, 30),
			truncate(strings.Join(r.TagValues(), ", "), 24),
			r.URL,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d recipes\n", len(recipes))
}

func printAttemptTable(w io.Writer, attempts []dbpkg.Attempt) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No import attempts found")
		return
	}

	fmt.Fprintf(w, "%-6s %-20s %-13s %-13s %s\n", "ID", "Attempted", "Outcome", "Error Type", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, a := range attempts {
		fmt.Fprintf(w, "%-6d %-20s %-13s %-13s %s\n",
			a.ID,
			a.AttemptedAt.Format("2006-01-02 15:04:05"),
			a.Outcome,
			a.ErrorType,
			a.URL,
		)
		if a.ErrorMessage != "" {
			fmt.Fprintf(w, "       Error: %s\n", a.ErrorMessage)
		}
	}
}
