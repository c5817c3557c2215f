// Package normalizer maps a schema.org Recipe object onto models.Recipe.
//
// Real sites publish the same property in several shapes (a string, a list
// of strings, an object, a list of objects). Each property has exactly one
// mapper in fields.go that resolves those shapes; a shape a mapper does not
// recognize yields the field's default instead of an error.
package normalizer

import (
	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/duration"
	"github.com/dtnitsch/recipe-web-parser/pkg/metadata"
)

// Normalize builds a Recipe from obj. URL is left for the caller to set.
func Normalize(obj metadata.Object) models.Recipe {
	return models.Recipe{
		Title:             stringValue(obj["name"]),
		Description:       stringValue(obj["description"]),
		Time:              recipeTime(obj["prepTime"], obj["cookTime"]),
		Servings:          servings(obj["recipeYield"]),
		Ingredients:       ingredients(obj),
		Instructions:      instructions(obj["recipeInstructions"]),
		Tags:              tags(obj["recipeCategory"], obj["recipeCuisine"]),
		Images:            images(obj["image"]),
		Rating:            rating(obj["aggregateRating"]),
		IsIntegrated:      true,
		HasRecipeMetadata: true,
	}
}

func recipeTime(prep, cook any) models.RecipeTime {
	var t models.RecipeTime
	if s, ok := prep.(string); ok && s != "" {
		minutes := duration.Parse(s)
		t.Preparation = &minutes
	}
	if s, ok := cook.(string); ok && s != "" {
		t.Cooking = duration.Parse(s)
	}
	return t
}
