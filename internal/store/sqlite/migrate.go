package sqlite

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		username   TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL DEFAULT '',
		auth_token TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS personal_settings (
		user_id           INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_weight_kg REAL,
		target_weight_kg  REAL,
		height_cm         REAL,
		age               INTEGER,
		sex               TEXT,
		activity_level    TEXT,
		goal              TEXT,
		bmr               REAL,
		tdee              REAL,
		daily_calories    REAL,
		protein_g         REAL,
		fat_g             REAL,
		carbs_g           REAL,
		last_calculation  TEXT,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS meal_plans (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id         INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		goal            TEXT NOT NULL,
		target_calories REAL NOT NULL,
		macros          TEXT NOT NULL,
		meals_per_day   INTEGER NOT NULL,
		days            TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS training_programs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		goal         TEXT NOT NULL,
		workout_days INTEGER NOT NULL,
		exercises    TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_plans (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id             INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		start_date          TEXT NOT NULL,
		end_date            TEXT NOT NULL,
		active              INTEGER NOT NULL DEFAULT 0,
		meal_plan_id        INTEGER REFERENCES meal_plans(id) ON DELETE SET NULL,
		training_program_id INTEGER REFERENCES training_programs(id) ON DELETE SET NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_plans_user_active ON daily_plans(user_id, active)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category)`,
}
