package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantFound   bool
		wantName    string
		wantTypeTag bool
	}{
		{
			name: "empty input",
			raw:  "",
		},
		{
			name:      "single recipe block",
			raw:       `{"@context":"https://schema.org","@type":"Recipe","name":"Soup"}`,
			wantFound: true,
			wantName:  "Soup",
		},
		{
			name:      "type given as array",
			raw:       `{"@type":["Recipe","NewsArticle"],"name":"Stew"}`,
			wantFound: true,
			wantName:  "Stew",
		},
		{
			name:      "concatenated blocks",
			raw:       `{"@type":"WebSite","name":"Site"}{"@type":"Recipe","name":"Cake"}`,
			wantFound: true,
			wantName:  "Cake",
		},
		{
			name:      "graph with person and recipe",
			raw:       `{"@context":"https://schema.org","@graph":[{"@type":"Person","name":"Ann"},{"@type":"Recipe","name":"Tart"}]}`,
			wantFound: true,
			wantName:  "Tart",
		},
		{
			name:      "top-level array",
			raw:       `[{"@type":"BreadcrumbList"},{"@type":"Recipe","name":"Bread"}]`,
			wantFound: true,
			wantName:  "Bread",
		},
		{
			name:      "first recipe wins",
			raw:       `{"@type":"Recipe","name":"First"}{"@type":"Recipe","name":"Second"}`,
			wantFound: true,
			wantName:  "First",
		},
		{
			name: "no recipe object",
			raw:  `{"@type":"Organization","name":"Acme"}`,
		},
		{
			name: "object without type",
			raw:  `{"name":"anonymous"}`,
		},
		{
			name:        "broken recipe block keeps the type tag",
			raw:         `{"@type": "Recipe", "name": "Broken`,
			wantTypeTag: true,
		},
		{
			name:        "broken compact recipe block",
			raw:         `garbage{"@type":"Recipe"}`,
			wantTypeTag: true,
		},
		{
			name: "broken block without recipe tag",
			raw:  `{"@type": "Article", "name": "oops`,
		},
		{
			name:      "broken neighbour does not hide a decodable recipe",
			raw:       `{"@type":"Recipe","name":"Ok"}{"@type":"Article",`,
			wantFound: true,
			wantName:  "Ok",
		},
		{
			name: "nested graph is not followed",
			raw:  `{"@graph":[{"@graph":[{"@type":"Recipe","name":"Deep"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(tt.raw)
			if got.Found != tt.wantFound {
				t.Fatalf("Locate().Found = %v, want %v", got.Found, tt.wantFound)
			}
			if got.HasRecipeTypeTag != tt.wantTypeTag {
				t.Errorf("Locate().HasRecipeTypeTag = %v, want %v", got.HasRecipeTypeTag, tt.wantTypeTag)
			}
			if tt.wantFound {
				if name, _ := got.Recipe["name"].(string); name != tt.wantName {
					t.Errorf("Locate().Recipe name = %q, want %q", name, tt.wantName)
				}
			}
		})
	}
}

func TestSplitBlocks(t *testing.T) {
	got := SplitBlocks(`{"a":1}{"b":{"c":2}}{"d":3}`)
	want := []string{`{"a":1}`, `{"b":{"c":2}}`, `{"d":3}`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectTypes(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want []string
	}{
		{name: "string", obj: Object{"@type": "Recipe"}, want: []string{"Recipe"}},
		{name: "array", obj: Object{"@type": []any{"Recipe", 3, "Thing"}}, want: []string{"Recipe", "Thing"}},
		{name: "missing", obj: Object{}, want: nil},
		{name: "number", obj: Object{"@type": 4.0}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.obj.Types()); diff != "" {
				t.Errorf("Types() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContainsRecipeTypeTag(t *testing.T) {
	if !ContainsRecipeTypeTag(`..."@type": "Recipe"...`) {
		t.Error("spaced marker not detected")
	}
	if !ContainsRecipeTypeTag(`..."@type":"Recipe"...`) {
		t.Error("compact marker not detected")
	}
	if ContainsRecipeTypeTag(`..."@type": "Article"...`) {
		t.Error("non-recipe marker detected")
	}
}
