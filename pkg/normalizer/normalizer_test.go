package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/metadata"
	"github.com/google/go-cmp/cmp"
)

// object decodes a JSON literal the same way the locator does.
func object(t *testing.T, raw string) metadata.Object {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("invalid fixture %s: %v", raw, err)
	}
	return metadata.Object(m)
}

func intPtr(n int) *int { return &n }

func TestNormalize_FullRecipe(t *testing.T) {
	obj := object(t, `{
		"@type": "Recipe",
		"name": "Tarte Tatin",
		"description": "Upside-down apple tart.",
		"prepTime": "PT20M",
		"cookTime": "P0DT1H0M",
		"recipeYield": ["8", "8 slices"],
		"recipeIngredient": ["6 apples", "100 g sugar"],
		"recipeInstructions": [
			{"@type": "HowToStep", "text": "Peel the\napples. "},
			{"@type": "HowToStep", "text": "Bake  for an   hour."}
		],
		"recipeCategory": "Dessert",
		"recipeCuisine": "French",
		"image": {"@type": "ImageObject", "url": "https://example.com/tatin.jpg"},
		"aggregateRating": {"ratingValue": 9, "bestRating": "10"}
	}`)

	want := models.Recipe{
		Title:       "Tarte Tatin",
		Description: "Upside-down apple tart.",
		Time:        models.RecipeTime{Preparation: intPtr(20), Cooking: 60},
		Servings:    8,
		Ingredients: []models.Ingredient{{Name: "6 apples"}, {Name: "100 g sugar"}},
		Instructions: []models.Step{
			{Position: 1, Content: "Peel theapples."},
			{Position: 2, Content: "Bake for an hour."},
		},
		Tags:              []models.Tag{{Value: "Dessert"}, {Value: "French"}},
		Images:            []string{"https://example.com/tatin.jpg"},
		Rating:            4.5,
		IsIntegrated:      true,
		HasRecipeMetadata: true,
	}

	got := Normalize(obj)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MinimalObject(t *testing.T) {
	got := Normalize(object(t, `{"@type":"Recipe"}`))

	if got.Title != "" {
		t.Errorf("Title = %q, want empty", got.Title)
	}
	if got.Time.Preparation != nil {
		t.Errorf("Time.Preparation = %d, want nil", *got.Time.Preparation)
	}
	if got.Time.Cooking != 0 {
		t.Errorf("Time.Cooking = %d, want 0", got.Time.Cooking)
	}
	if got.Servings != models.DefaultServings {
		t.Errorf("Servings = %d, want %d", got.Servings, models.DefaultServings)
	}
	if got.Rating != 0 {
		t.Errorf("Rating = %v, want 0", got.Rating)
	}
	if len(got.Ingredients) != 0 || len(got.Instructions) != 0 || len(got.Tags) != 0 || len(got.Images) != 0 {
		t.Errorf("expected empty lists, got %+v", got)
	}
	if !got.IsIntegrated || !got.HasRecipeMetadata {
		t.Error("expected IsIntegrated and HasRecipeMetadata to be set")
	}
}

func TestImages(t *testing.T) {
	want := []string{"http://x/1.jpg"}
	shapes := []string{
		`{"image": "http://x/1.jpg"}`,
		`{"image": ["http://x/1.jpg"]}`,
		`{"image": {"url": "http://x/1.jpg"}}`,
		`{"image": [{"url": "http://x/1.jpg"}]}`,
		`{"image": [["http://x/1.jpg"]]}`,
	}

	for _, raw := range shapes {
		got := Normalize(object(t, raw)).Images
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("images for %s mismatch (-want +got):\n%s", raw, diff)
		}
	}

	got := images([]any{"a", []any{"b", "c"}, map[string]any{"url": "d"}, 42.0, map[string]any{"width": 10.0}})
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("mixed images mismatch (-want +got):\n%s", diff)
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name     string
		category any
		cuisine  any
		want     []models.Tag
	}{
		{
			name:     "dedup across sources",
			category: []any{"Dessert", "Dessert"},
			cuisine:  "Dessert, French",
			want:     []models.Tag{{Value: "Dessert"}, {Value: "French"}},
		},
		{
			name:     "empty cuisine entries dropped",
			category: "Main, Dinner",
			cuisine:  "Italian, ",
			want:     []models.Tag{{Value: "Main"}, {Value: "Dinner"}, {Value: "Italian"}},
		},
		{
			name: "both absent",
			want: []models.Tag{},
		},
		{
			name:     "unexpected shape",
			category: 12.0,
			cuisine:  map[string]any{"name": "Thai"},
			want:     []models.Tag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tags(tt.category, tt.cuisine)); diff != "" {
				t.Errorf("tags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstructions(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []models.Step
	}{
		{
			name: "plain strings",
			raw:  []any{"Mix.", "\tBake.\n"},
			want: []models.Step{{Position: 1, Content: "Mix."}, {Position: 2, Content: "Bake."}},
		},
		{
			name: "single string",
			raw:  " Mix  everything ",
			want: []models.Step{{Position: 1, Content: "Mix everything"}},
		},
		{
			name: "sections are expanded",
			raw: []any{
				map[string]any{"@type": "HowToSection", "name": "Dough", "itemListElement": []any{
					map[string]any{"@type": "HowToStep", "text": "Knead."},
					map[string]any{"@type": "HowToStep", "text": "Rest."},
				}},
				map[string]any{"@type": "HowToStep", "text": "Shape."},
			},
			want: []models.Step{
				{Position: 1, Content: "Knead."},
				{Position: 2, Content: "Rest."},
				{Position: 3, Content: "Shape."},
			},
		},
		{
			name: "objects without text are skipped",
			raw:  []any{map[string]any{"name": "no text"}, map[string]any{"text": "Serve."}},
			want: []models.Step{{Position: 1, Content: "Serve."}},
		},
		{
			name: "empty steps are dropped",
			raw:  []any{"", "Stir.", map[string]any{"text": " \n "}, "  "},
			want: []models.Step{{Position: 1, Content: "Stir."}},
		},
		{
			name: "lone empty string",
			raw:  "\n",
			want: []models.Step{},
		},
		{
			name: "unexpected shape",
			raw:  42.0,
			want: []models.Step{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, instructions(tt.raw)); diff != "" {
				t.Errorf("instructions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "Stir\nwell", want: "Stirwell"},
		{in: " Stir well ", want: "Stir well"},
		{in: "Stir    well", want: "Stir well"},
		{in: "\tStir\t", want: "Stir"},
		{in: "  Stir", want: " Stir"},
	}

	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "with best rating", raw: map[string]any{"ratingValue": 4.0, "bestRating": "5"}, want: 4},
		{name: "ten point scale", raw: map[string]any{"ratingValue": 8.0, "bestRating": 10.0}, want: 4},
		{name: "above five without best", raw: map[string]any{"ratingValue": 8.0}, want: 0},
		{name: "five point scale assumed", raw: map[string]any{"ratingValue": 3.0}, want: 3},
		{name: "string value", raw: map[string]any{"ratingValue": "4.5"}, want: 4.5},
		{name: "zero best rating", raw: map[string]any{"ratingValue": 4.0, "bestRating": "0"}, want: 0},
		{name: "unparseable best rating", raw: map[string]any{"ratingValue": 4.0, "bestRating": "five"}, want: 0},
		{name: "value above best", raw: map[string]any{"ratingValue": 7.0, "bestRating": "5"}, want: 0},
		{name: "unparseable value", raw: map[string]any{"ratingValue": "n/a"}, want: 0},
		{name: "absent", raw: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rating(tt.raw); got != tt.want {
				t.Errorf("rating() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServings(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{name: "number string", raw: "6", want: 6},
		{name: "with unit", raw: "12 cookies", want: 12},
		{name: "list", raw: []any{"2", "2 bowls"}, want: 2},
		{name: "number", raw: 3.0, want: 3},
		{name: "words", raw: "Makes a dozen", want: models.DefaultServings},
		{name: "empty list", raw: []any{}, want: models.DefaultServings},
		{name: "absent", raw: nil, want: models.DefaultServings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := servings(tt.raw); got != tt.want {
				t.Errorf("servings(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIngredients(t *testing.T) {
	got := ingredients(map[string]any{"recipeIngredient": []any{"1 egg", 2.0, "salt"}})
	want := []models.Ingredient{{Name: "1 egg"}, {Name: "salt"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ingredients() mismatch (-want +got):\n%s", diff)
	}

	legacy := ingredients(map[string]any{"ingredients": "water"})
	if diff := cmp.Diff([]models.Ingredient{{Name: "water"}}, legacy); diff != "" {
		t.Errorf("legacy ingredients mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipeTime_FreeText(t *testing.T) {
	got := recipeTime("1 hr 5 min", "PT10M")
	if got.Preparation == nil || *got.Preparation != 65 {
		t.Errorf("Preparation = %v, want 65", got.Preparation)
	}
	if got.Cooking != 10 {
		t.Errorf("Cooking = %d, want 10", got.Cooking)
	}
}
