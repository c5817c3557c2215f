package db

import (
	"strconv"

	dbpkg "github.com/dtnitsch/recipe-web-parser/pkg/db"
	"github.com/dtnitsch/recipe-web-parser/pkg/integration"
)

// GetRecipeByIDOrURL treats a numeric argument as a recipe id and anything else as a URL.
func GetRecipeByIDOrURL(arg string, database *dbpkg.DB) (*dbpkg.RecipeRecord, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return database.GetRecipe(id)
	}
	return database.GetRecipeByURL(arg)
}

func outcomeOf(r dbpkg.RecipeRecord) string {
	return integration.Outcome(&r.Recipe)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
