package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- One row per imported URL. List fields are stored as JSON arrays.
CREATE TABLE IF NOT EXISTS recipes (
    recipe_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    preparation_minutes INTEGER,          -- NULL when the page does not state it
    cooking_minutes INTEGER NOT NULL DEFAULT 0,
    servings INTEGER NOT NULL DEFAULT 4,
    ingredients TEXT NOT NULL DEFAULT '[]',
    instructions TEXT NOT NULL DEFAULT '[]',
    tags TEXT NOT NULL DEFAULT '[]',
    images TEXT NOT NULL DEFAULT '[]',
    rating REAL NOT NULL DEFAULT 0,
    is_integrated BOOLEAN NOT NULL DEFAULT 0,
    has_recipe_metadata BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_recipes_review ON recipes(has_recipe_metadata, is_integrated);

-- Every import attempt, including failures that never produced a recipe.
CREATE TABLE IF NOT EXISTS import_attempts (
    attempt_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    outcome TEXT NOT NULL,                -- integrated, needs_review, link_only, failed
    error_type TEXT,                      -- invalid_url, fetch_error, duplicate, store_error
    error_message TEXT,
    attempted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_attempts_url ON import_attempts(url);
`
