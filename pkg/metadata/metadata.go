// Package metadata finds the schema.org Recipe object among a page's ld+json blocks.
package metadata

import (
	"strings"

	"github.com/dtnitsch/recipe-web-parser/pkg/lenientjson"
)

// RecipeType is the schema.org @type value that marks a recipe object.
const RecipeType = "Recipe"

const blockDelimiter = "$delimiter$"

// recipeTypeMarkers are searched in the raw text when decoding fails.
var recipeTypeMarkers = []string{`"@type": "Recipe"`, `"@type":"Recipe"`}

// Object is one decoded ld+json object.
type Object map[string]any

// Types returns the @type value as a list, whether it was a string or an array.
func (o Object) Types() []string {
	switch t := o["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		types := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				types = append(types, s)
			}
		}
		return types
	case []string:
		return t
	}
	return nil
}

// IsType reports whether @type equals name or is a collection containing it.
func (o Object) IsType(name string) bool {
	for _, t := range o.Types() {
		if t == name {
			return true
		}
	}
	return false
}

// Result is the outcome of Locate.
type Result struct {
	// Found is true when a Recipe object was decoded; Recipe holds it.
	Found  bool
	Recipe Object

	// HasRecipeTypeTag is set from the raw text when some block could not
	// be decoded, so callers can tell "present but broken" from "absent".
	HasRecipeTypeTag bool
}

// Locate splits raw into candidate blocks, decodes them, flattens @graph
// containers by one level and returns the first Recipe object.
func Locate(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	objects, decodeFailed := decodeBlocks(SplitBlocks(raw))
	for _, obj := range objects {
		if obj.IsType(RecipeType) {
			return Result{Found: true, Recipe: obj}
		}
	}

	if decodeFailed {
		return Result{HasRecipeTypeTag: ContainsRecipeTypeTag(raw)}
	}
	return Result{}
}

// SplitBlocks separates objects that were concatenated without a separator ("}{").
func SplitBlocks(raw string) []string {
	marked := strings.ReplaceAll(raw, "}{", "}"+blockDelimiter+"{")
	return strings.Split(marked, blockDelimiter)
}

// ContainsRecipeTypeTag is the textual fallback used when JSON decoding fails.
func ContainsRecipeTypeTag(raw string) bool {
	for _, marker := range recipeTypeMarkers {
		if strings.Contains(raw, marker) {
			return true
		}
	}
	return false
}

// decodeBlocks decodes every fragment and flattens the results into one
// ordered list. The bool is true when at least one fragment was undecodable.
func decodeBlocks(fragments []string) ([]Object, bool) {
	var objects []Object
	failed := false
	for _, fragment := range fragments {
		value, err := lenientjson.Decode(fragment)
		if err != nil {
			failed = true
			continue
		}
		objects = append(objects, flatten(value)...)
	}
	return objects, failed
}

// flatten turns one decoded value into objects. A top-level array yields its
// elements; an object with @graph yields the graph members instead of itself.
// Nesting below that is not followed.
func flatten(value any) []Object {
	switch v := value.(type) {
	case map[string]any:
		graph, ok := v["@graph"]
		if !ok {
			return []Object{Object(v)}
		}
		if m, ok := graph.(map[string]any); ok {
			return []Object{Object(m)}
		}
		items, _ := graph.([]any)
		return objectsIn(items)
	case []any:
		return objectsIn(v)
	}
	return nil
}

func objectsIn(items []any) []Object {
	var out []Object
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}
