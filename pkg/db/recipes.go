package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// RecipeRecord is a stored recipe with its row metadata.
type RecipeRecord struct {
	ID            int64 `json:"id" yaml:"id"`
	models.Recipe `yaml:",inline"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

const recipeColumns = `recipe_id, url, title, description, preparation_minutes, cooking_minutes,
	servings, ingredients, instructions, tags, images, rating, is_integrated, has_recipe_metadata,
	created_at, updated_at`

// recipeRow holds the list fields already encoded for storage.
type recipeRow struct {
	ingredients, instructions, tags, images string
}

func encodeRecipe(r *models.Recipe) (recipeRow, error) {
	var row recipeRow
	fields := []struct {
		dst *string
		v   any
	}{
		{&row.ingredients, nonNil(r.Ingredients)},
		{&row.instructions, nonNil(r.Instructions)},
		{&row.tags, nonNil(r.Tags)},
		{&row.images, nonNil(r.Images)},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return row, fmt.Errorf("failed to encode recipe fields: %w", err)
		}
		*f.dst = string(b)
	}
	return row, nil
}

// nonNil keeps nil slices from being stored as JSON null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// InsertRecipe stores r and returns its id. A recipe for the same URL must
// not exist yet; ErrDuplicateRecipe is returned otherwise.
func (db *DB) InsertRecipe(r *models.Recipe) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT recipe_id FROM recipes WHERE url = ?", r.URL).Scan(&existingID)
	if err == nil {
		return 0, fmt.Errorf("%w: %s (id %d)", ErrDuplicateRecipe, r.URL, existingID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing recipe: %w", err)
	}

	row, err := encodeRecipe(r)
	if err != nil {
		return 0, err
	}

	result, err := db.Exec(`
		INSERT INTO recipes (url, title, description, preparation_minutes, cooking_minutes,
			servings, ingredients, instructions, tags, images, rating, is_integrated, has_recipe_metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.URL, r.Title, r.Description, nullableInt(r.Time.Preparation), r.Time.Cooking,
		r.Servings, row.ingredients, row.instructions, row.tags, row.images, r.Rating,
		r.IsIntegrated, r.HasRecipeMetadata)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get recipe ID: %w", err)
	}
	return id, nil
}

// ReplaceRecipe inserts r or overwrites the recipe stored for the same URL,
// keeping its id and created_at.
func (db *DB) ReplaceRecipe(r *models.Recipe) (int64, error) {
	row, err := encodeRecipe(r)
	if err != nil {
		return 0, err
	}

	_, err = db.Exec(`
		INSERT INTO recipes (url, title, description, preparation_minutes, cooking_minutes,
			servings, ingredients, instructions, tags, images, rating, is_integrated, has_recipe_metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			preparation_minutes = excluded.preparation_minutes,
			cooking_minutes = excluded.cooking_minutes,
			servings = excluded.servings,
			ingredients = excluded.ingredients,
			instructions = excluded.instructions,
			tags = excluded.tags,
			images = excluded.images,
			rating = excluded.rating,
			is_integrated = excluded.is_integrated,
			has_recipe_metadata = excluded.has_recipe_metadata,
			updated_at = CURRENT_TIMESTAMP
	`, r.URL, r.Title, r.Description, nullableInt(r.Time.Preparation), r.Time.Cooking,
		r.Servings, row.ingredients, row.instructions, row.tags, row.images, r.Rating,
		r.IsIntegrated, r.HasRecipeMetadata)
	if err != nil {
		return 0, fmt.Errorf("failed to replace recipe: %w", err)
	}

	var id int64
	if err := db.QueryRow("SELECT recipe_id FROM recipes WHERE url = ?", r.URL).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get recipe ID: %w", err)
	}
	return id, nil
}

func (db *DB) GetRecipe(id int64) (*RecipeRecord, error) {
	return db.getRecipe("SELECT "+recipeColumns+" FROM recipes WHERE recipe_id = ?", id)
}

func (db *DB) GetRecipeByURL(url string) (*RecipeRecord, error) {
	return db.getRecipe("SELECT "+recipeColumns+" FROM recipes WHERE url = ?", url)
}

func (db *DB) getRecipe(query string, arg any) (*RecipeRecord, error) {
	rec, err := scanRecipe(db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrRecipeNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return rec, nil
}

// ListRecipes returns the most recently stored recipes first. A limit of 0
// or less returns all of them.
func (db *DB) ListRecipes(limit int) ([]RecipeRecord, error) {
	query := "SELECT " + recipeColumns + " FROM recipes ORDER BY recipe_id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return db.queryRecipes(query, args...)
}

// ListNeedsReview returns recipes whose page declared a Recipe that could not be parsed.
func (db *DB) ListNeedsReview() ([]RecipeRecord, error) {
	return db.queryRecipes("SELECT " + recipeColumns + ` FROM recipes
		WHERE has_recipe_metadata = 1 AND is_integrated = 0
		ORDER BY recipe_id`)
}

func (db *DB) queryRecipes(query string, args ...any) ([]RecipeRecord, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var records []RecipeRecord
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*RecipeRecord, error) {
	var (
		rec  RecipeRecord
		prep sql.NullInt64
		row  recipeRow
	)
	err := s.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Description, &prep, &rec.Time.Cooking,
		&rec.Servings, &row.ingredients, &row.instructions, &row.tags, &row.images, &rec.Rating,
		&rec.IsIntegrated, &rec.HasRecipeMetadata, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if prep.Valid {
		minutes := int(prep.Int64)
		rec.Time.Preparation = &minutes
	}

	targets := []struct {
		raw string
		dst any
	}{
		{row.ingredients, &rec.Ingredients},
		{row.instructions, &rec.Instructions},
		{row.tags, &rec.Tags},
		{row.images, &rec.Images},
	}
	for _, t := range targets {
		if err := json.Unmarshal([]byte(t.raw), t.dst); err != nil {
			return nil, fmt.Errorf("failed to decode recipe fields: %w", err)
		}
	}
	return &rec, nil
}
