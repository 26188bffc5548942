package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// LookupMigrations create the presence and bbox tables
var LookupMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_presence",
		SQL: `CREATE TABLE IF NOT EXISTS presence (
			region_key TEXT NOT NULL,
			species    TEXT NOT NULL,
			present    INTEGER NOT NULL,
			PRIMARY KEY (region_key, species)
		)`,
	},
	{
		Version: 2,
		Name:    "create_bboxes",
		SQL: `CREATE TABLE IF NOT EXISTS bboxes (
			region_key TEXT PRIMARY KEY,
			min_lon    REAL NOT NULL,
			min_lat    REAL NOT NULL,
			max_lon    REAL NOT NULL,
			max_lat    REAL NOT NULL
		)`,
	},
}

// RunMigrations applies every migration not yet recorded in the migrations table
func RunMigrations(db *sql.DB, migrations []Migration) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to execute migration %d: %w", m.Version, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
