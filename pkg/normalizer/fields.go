package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/models"
)

var (
	multiSpace       = regexp.MustCompile(` {2,}`)
	lineBreakRemover = strings.NewReplacer("\n", "", "\t", "")
)

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// stringList accepts a single string or a list and keeps only string elements.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	}
	return nil
}

// sanitize removes line breaks and tabs, trims one space from each end and
// collapses runs of spaces.
func sanitize(s string) string {
	s = lineBreakRemover.Replace(s)
	s = strings.TrimPrefix(s, " ")
	s = strings.TrimSuffix(s, " ")
	return multiSpace.ReplaceAllString(s, " ")
}

// servings reads the leading integer of recipeYield; the first element is
// used when the yield is a list.
func servings(v any) int {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return models.DefaultServings
		}
		v = list[0]
	}

	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		if n, ok := leadingInt(val); ok {
			return n
		}
	}
	return models.DefaultServings
}

// ingredients maps recipeIngredient (or the legacy "ingredients" property)
// one string to one Ingredient.
func ingredients(obj map[string]any) []models.Ingredient {
	raw, ok := obj["recipeIngredient"]
	if !ok {
		raw = obj["ingredients"]
	}

	names := stringList(raw)
	out := make([]models.Ingredient, 0, len(names))
	for _, name := range names {
		out = append(out, models.Ingredient{Name: name})
	}
	return out
}

// instructions accepts a list of HowToStep objects, a list of strings or a
// single string. HowToSection objects are expanded in place. Steps that are
// empty after sanitizing are dropped in every shape.
func instructions(v any) []models.Step {
	var texts []string
	switch val := v.(type) {
	case string:
		texts = appendText(texts, val)
	case []any:
		texts = instructionTexts(val)
	}

	steps := make([]models.Step, 0, len(texts))
	for i, text := range texts {
		steps = append(steps, models.Step{Position: i + 1, Content: text})
	}
	return steps
}

func instructionTexts(items []any) []string {
	var texts []string
	for _, item := range items {
		switch inst := item.(type) {
		case string:
			texts = appendText(texts, inst)
		case map[string]any:
			if text, ok := inst["text"].(string); ok {
				texts = appendText(texts, text)
				continue
			}
			if nested, ok := inst["itemListElement"].([]any); ok {
				texts = append(texts, instructionTexts(nested)...)
			}
		}
	}
	return texts
}

func appendText(texts []string, raw string) []string {
	if content := sanitize(raw); content != "" {
		return append(texts, content)
	}
	return texts
}

// tags merges recipeCategory and recipeCuisine, category first, keeping the
// first occurrence of every value.
func tags(category, cuisine any) []models.Tag {
	values := splitTagList(category)
	for _, c := range splitTagList(cuisine) {
		if c != "" {
			values = append(values, c)
		}
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]models.Tag, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, models.Tag{Value: v})
	}
	return out
}

func splitTagList(v any) []string {
	if s, ok := v.(string); ok {
		return strings.Split(s, ", ")
	}
	return stringList(v)
}

// images flattens the image property into URLs. Lists are flattened by one
// level; objects contribute their "url".
func images(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case map[string]any:
		if u := stringValue(val["url"]); u != "" {
			return []string{u}
		}
	case []any:
		var flat []any
		for _, item := range val {
			if nested, ok := item.([]any); ok {
				flat = append(flat, nested...)
				continue
			}
			flat = append(flat, item)
		}

		out := make([]string, 0, len(flat))
		for _, item := range flat {
			switch img := item.(type) {
			case string:
				out = append(out, img)
			case map[string]any:
				if u := stringValue(img["url"]); u != "" {
					out = append(out, u)
				}
			}
		}
		return out
	}
	return []string{}
}

// rating converts aggregateRating to a 0-5 scale. Without bestRating the
// value is taken as already being out of 5, and values above 5 are dropped.
func rating(v any) float64 {
	agg, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	value, ok := number(agg["ratingValue"])
	if !ok {
		return 0
	}

	var r float64
	if best, present := agg["bestRating"]; present && best != nil && best != "" {
		scale, ok := bestRatingScale(best)
		if !ok || scale <= 0 {
			return 0
		}
		r = value / float64(scale) * 5
	} else {
		if value > 5 {
			return 0
		}
		r = value
	}

	if math.IsNaN(r) || r < 0 || r > 5 {
		return 0
	}
	return r
}

func bestRatingScale(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(math.Trunc(val)), true
	case string:
		return leadingInt(val)
	}
	return 0, false
}

// number accepts JSON numbers and numeric strings.
func number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// leadingInt parses the integer at the start of s ("4 servings" -> 4).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
