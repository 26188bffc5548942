package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jengzang/wildlife-bi-go/internal/database"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

func newLookupDB(t *testing.T) *LookupRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "lookup.db")})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.RunMigrations(db, database.LookupMigrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewLookupRepository(db)
}

func TestLookupRepositoryDefaults(t *testing.T) {
	repo := newLookupDB(t)
	ctx := context.Background()

	present, err := repo.IsSpeciesPresent(ctx, "東京都", "", "熊")
	if err != nil || !present {
		t.Fatalf("expected default presence, got %v, %v", present, err)
	}

	b, err := repo.BBox(ctx, region.Hokkaido, "道東")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := spatial.Around(spatial.Point{Lat: 43.4, Lon: 144.2}, region.FallbackHalfDeg)
	if b != want {
		t.Fatalf("expected fallback %v, got %v", want, b)
	}
}

func TestLookupRepositoryImport(t *testing.T) {
	repo := newLookupDB(t)
	ctx := context.Background()

	err := repo.ImportPresence([]PresenceRow{
		{RegionKey: "東京都", Species: "熊", Present: false},
		{RegionKey: "北海道|道東", Species: "猪", Present: false},
	})
	if err != nil {
		t.Fatalf("failed to import presence: %v", err)
	}
	// Upsert flips an existing row.
	if err := repo.ImportPresence([]PresenceRow{{RegionKey: "東京都", Species: "熊", Present: true}}); err != nil {
		t.Fatalf("failed to upsert presence: %v", err)
	}

	err = repo.ImportBBoxes([]BBoxRow{
		{RegionKey: "東京都", BBox: spatial.BoundingBox{MinLon: 139.9, MinLat: 35.9, MaxLon: 138.9, MaxLat: 35.5}},
	})
	if err != nil {
		t.Fatalf("failed to import bboxes: %v", err)
	}

	if present, _ := repo.IsSpeciesPresent(ctx, "東京都", "", "熊"); !present {
		t.Fatal("expected upserted presence to be true")
	}
	if present, _ := repo.IsSpeciesPresent(ctx, region.Hokkaido, "道東", "猪"); present {
		t.Fatal("expected 道東 猪 to be absent")
	}
	if present, _ := repo.IsSpeciesPresent(ctx, region.Hokkaido, "道央", "猪"); !present {
		t.Fatal("expected 道央 猪 to default to present")
	}

	b, err := repo.BBox(ctx, "東京都", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != (spatial.BoundingBox{MinLon: 138.9, MinLat: 35.5, MaxLon: 139.9, MaxLat: 35.9}) {
		t.Fatalf("expected normalized bbox, got %v", b)
	}

	presence, bboxes, err := repo.CountRows(ctx)
	if err != nil || presence != 2 || bboxes != 1 {
		t.Fatalf("unexpected counts %d/%d, %v", presence, bboxes, err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	repo := newLookupDB(t)
	if err := database.RunMigrations(repo.db, database.LookupMigrations); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}
