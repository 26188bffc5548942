// Command lookupdb imports presence.json and pref_bboxes.json into a SQLite
// lookup file that the server can use through LOOKUP_DB.
package main

import (
	"context"
	"flag"
	"log"
	"sort"

	"github.com/jengzang/wildlife-bi-go/internal/database"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/internal/repository"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

func main() {
	dataDir := flag.String("data", "./data", "directory holding the JSON lookup files")
	dbPath := flag.String("db", "./data/lookup.db", "SQLite file to create or update")
	flag.Parse()

	files := region.NewFileLookup(*dataDir)
	presence, err := files.Presence()
	if err != nil {
		log.Fatalf("Failed to read presence: %v", err)
	}
	bboxes, skipped, err := files.BBoxes()
	if err != nil {
		log.Fatalf("Failed to read bboxes: %v", err)
	}
	for _, key := range skipped {
		log.Printf("Skipping malformed bbox entry %q", key)
	}

	db, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, database.LookupMigrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewLookupRepository(db)
	if err := repo.ImportPresence(presenceRows(presence)); err != nil {
		log.Fatalf("Failed to import presence: %v", err)
	}
	if err := repo.ImportBBoxes(bboxRows(bboxes)); err != nil {
		log.Fatalf("Failed to import bboxes: %v", err)
	}

	p, b, err := repo.CountRows(context.Background())
	if err != nil {
		log.Fatalf("Failed to count rows: %v", err)
	}
	log.Printf("Lookup database %s: %d presence rows, %d bboxes", *dbPath, p, b)
}

func presenceRows(data map[string]map[string]bool) []repository.PresenceRow {
	var rows []repository.PresenceRow
	for key, species := range data {
		for name, present := range species {
			rows = append(rows, repository.PresenceRow{RegionKey: key, Species: name, Present: present})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RegionKey != rows[j].RegionKey {
			return rows[i].RegionKey < rows[j].RegionKey
		}
		return rows[i].Species < rows[j].Species
	})
	return rows
}

func bboxRows(data map[string]spatial.BoundingBox) []repository.BBoxRow {
	rows := make([]repository.BBoxRow, 0, len(data))
	for key, b := range data {
		rows = append(rows, repository.BBoxRow{RegionKey: key, BBox: b})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RegionKey < rows[j].RegionKey })
	return rows
}
