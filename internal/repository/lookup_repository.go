package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/wildlife-bi-go/internal/database"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

// LookupRepository serves species presence and region bounding boxes from
// the SQLite lookup file. It satisfies region.Lookup with the same defaults
// as the JSON files.
type LookupRepository struct {
	db *sql.DB
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// IsSpeciesPresent returns the stored flag, or true when there is no row
func (r *LookupRepository) IsSpeciesPresent(ctx context.Context, prefecture, part, species string) (bool, error) {
	query := `SELECT present FROM presence WHERE region_key = ? AND species = ?`

	var present int
	err := r.db.QueryRowContext(ctx, query, region.Key(prefecture, part), species).Scan(&present)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query presence: %w", err)
	}
	return present != 0, nil
}

// BBox returns the stored box, or the center fallback when there is no row
func (r *LookupRepository) BBox(ctx context.Context, prefecture, part string) (spatial.BoundingBox, error) {
	query := `SELECT min_lon, min_lat, max_lon, max_lat FROM bboxes WHERE region_key = ?`

	var b spatial.BoundingBox
	err := r.db.QueryRowContext(ctx, query, region.Key(prefecture, part)).Scan(
		&b.MinLon,
		&b.MinLat,
		&b.MaxLon,
		&b.MaxLat,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return region.FallbackBBox(prefecture, part)
	}
	if err != nil {
		return spatial.BoundingBox{}, fmt.Errorf("failed to query bbox: %w", err)
	}
	return b.Normalize(), nil
}

// PresenceRow is one presence flag keyed by region.Key
type PresenceRow struct {
	RegionKey string
	Species   string
	Present   bool
}

// BBoxRow is one bounding box keyed by region.Key
type BBoxRow struct {
	RegionKey string
	BBox      spatial.BoundingBox
}

// ImportPresence upserts presence rows in one transaction
func (r *LookupRepository) ImportPresence(rows []PresenceRow) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO presence (region_key, species, present) VALUES (?, ?, ?)
			ON CONFLICT (region_key, species) DO UPDATE SET present = excluded.present
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare presence insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			present := 0
			if row.Present {
				present = 1
			}
			if _, err := stmt.Exec(row.RegionKey, row.Species, present); err != nil {
				return fmt.Errorf("failed to upsert presence %s/%s: %w", row.RegionKey, row.Species, err)
			}
		}
		return nil
	})
}

// ImportBBoxes upserts normalized boxes in one transaction
func (r *LookupRepository) ImportBBoxes(rows []BBoxRow) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO bboxes (region_key, min_lon, min_lat, max_lon, max_lat) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (region_key) DO UPDATE SET
				min_lon = excluded.min_lon,
				min_lat = excluded.min_lat,
				max_lon = excluded.max_lon,
				max_lat = excluded.max_lat
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare bbox insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if err := row.BBox.Validate(); err != nil {
				return fmt.Errorf("invalid bbox for %s: %w", row.RegionKey, err)
			}
			b := row.BBox.Normalize()
			if _, err := stmt.Exec(row.RegionKey, b.MinLon, b.MinLat, b.MaxLon, b.MaxLat); err != nil {
				return fmt.Errorf("failed to upsert bbox %s: %w", row.RegionKey, err)
			}
		}
		return nil
	})
}

// CountRows returns the number of presence and bbox rows
func (r *LookupRepository) CountRows(ctx context.Context) (presence, bboxes int, err error) {
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presence`).Scan(&presence); err != nil {
		return 0, 0, fmt.Errorf("failed to count presence rows: %w", err)
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bboxes`).Scan(&bboxes); err != nil {
		return 0, 0, fmt.Errorf("failed to count bbox rows: %w", err)
	}
	return presence, bboxes, nil
}
