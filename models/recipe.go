package models

// DefaultServings is used when a page's yield cannot be read as a number.
const DefaultServings = 4

// Recipe is the canonical record produced for every imported URL.
type Recipe struct {
	URL               string       `json:"url" yaml:"url"`
	Title             string       `json:"title" yaml:"title"`
	Description       string       `json:"description,omitempty" yaml:"description,omitempty"`
	Time              RecipeTime   `json:"time" yaml:"time"`
	Servings          int          `json:"servings" yaml:"servings"`
	Ingredients       []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions      []Step       `json:"instructions" yaml:"instructions"`
	Tags              []Tag        `json:"tags" yaml:"tags"`
	Images            []string     `json:"images" yaml:"images"`
	Rating            float64      `json:"rating" yaml:"rating"`
	IsIntegrated      bool         `json:"is_integrated" yaml:"is_integrated"`
	HasRecipeMetadata bool         `json:"has_recipe_metadata" yaml:"has_recipe_metadata"`
}

// RecipeTime holds durations in minutes. Preparation is nil when the source
// does not state it, which is different from a stated zero.
type RecipeTime struct {
	Preparation *int `json:"preparation_minutes,omitempty" yaml:"preparation_minutes,omitempty"`
	Cooking     int  `json:"cooking_minutes" yaml:"cooking_minutes"`
}

type Ingredient struct {
	Name string `json:"name" yaml:"name"`
}

// Step is a single instruction. Position starts at 1.
type Step struct {
	Position int    `json:"position" yaml:"position"`
	Content  string `json:"content" yaml:"content"`
}

type Tag struct {
	Value string `json:"value" yaml:"value"`
}

// NewLinkRecipe returns the minimal stub used when a page has no usable
// recipe metadata.
func NewLinkRecipe(url, title string, hasRecipeMetadata bool) *Recipe {
	return &Recipe{
		URL:               url,
		Title:             title,
		Servings:          DefaultServings,
		Ingredients:       []Ingredient{},
		Instructions:      []Step{},
		Tags:              []Tag{},
		Images:            []string{},
		HasRecipeMetadata: hasRecipeMetadata,
	}
}

// NeedsReview reports whether the page declared a Recipe that could not be parsed.
func (r *Recipe) NeedsReview() bool {
	return r.HasRecipeMetadata && !r.IsIntegrated
}

// TagValues flattens Tags for display.
func (r *Recipe) TagValues() []string {
	values := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		values = append(values, t.Value)
	}
	return values
}
