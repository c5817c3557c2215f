package db

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/recipe-web-parser/models"
	dbpkg "github.com/dtnitsch/recipe-web-parser/pkg/db"
)

func setupTestDB(t *testing.T) *dbpkg.DB {
	t.Helper()
	database, err := dbpkg.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestGetRecipeByIDOrURL(t *testing.T) {
	database := setupTestDB(t)

	url := "https://example.com/tart"
	id, err := database.InsertRecipe(models.NewLinkRecipe(url, "Tart", false))
	if err != nil {
		t.Fatalf("InsertRecipe() error = %v", err)
	}

	byID, err := GetRecipeByIDOrURL("1", database)
	if err != nil {
		t.Fatalf("by id error = %v", err)
	}
	if byID.ID != id {
		t.Errorf("by id = %d, want %d", byID.ID, id)
	}

	byURL, err := GetRecipeByIDOrURL(url, database)
	if err != nil {
		t.Fatalf("by url error = %v", err)
	}
	if byURL.Title != "Tart" {
		t.Errorf("by url title = %q, want Tart", byURL.Title)
	}

	if _, err := GetRecipeByIDOrURL("99", database); !errors.Is(err, dbpkg.ErrRecipeNotFound) {
		t.Errorf("missing id error = %v, want ErrRecipeNotFound", err)
	}
}

func TestPrintRecipeTable(t *testing.T) {
	database := setupTestDB(t)

	tagged := models.NewLinkRecipe("https://example.com/c", "C", false)
	tagged.IsIntegrated = true
	tagged.HasRecipeMetadata = true
	tagged.Tags = []models.Tag{{Value: "Dessert"}, {Value: "French"}}

	recipes := []*models.Recipe{
		models.NewLinkRecipe("https://example.com/a", "A very long recipe title that will not fit", true),
		models.NewLinkRecipe("https://example.com/b", "B", false),
		tagged,
	}
	for _, r := range recipes {
		if _, err := database.InsertRecipe(r); err != nil {
			t.Fatalf("InsertRecipe() error = %v", err)
		}
	}
	records, err := database.ListRecipes(0)
	if err != nil {
		t.Fatalf("ListRecipes() error = %v", err)
	}

	var buf bytes.Buffer
	printRecipeTable(&buf, records)
	out := buf.String()

	for _, want := range []string{"needs_review", "link_only", "A very long recipe title th...", "Dessert, French", "Total: 3 recipes"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printRecipeTable(&buf, nil)
	if !strings.Contains(buf.String(), "No recipes found") {
		t.Errorf("empty table = %q", buf.String())
	}
}

func TestPrintAttemptTable(t *testing.T) {
	database := setupTestDB(t)
	if err := database.RecordAttempt("https://example.com/x", "failed", "fetch_error", "timeout"); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}
	attempts, err := database.ListAttempts("")
	if err != nil {
		t.Fatalf("ListAttempts() error = %v", err)
	}

	var buf bytes.Buffer
	printAttemptTable(&buf, attempts)
	for _, want := range []string{"fetch_error", "Error: timeout", "https://example.com/x"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table missing %q:\n%s", want, buf.String())
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("0123456789abc", 10); got != "0123456..." {
		t.Errorf("truncate() = %q, want %q", got, "0123456...")
	}
}
