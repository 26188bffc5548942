package region

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

// Lookup file names inside the data directory
const (
	PresenceFile = "presence.json"
	BBoxFile     = "pref_bboxes.json"
)

// Lookup answers presence and bounding-box questions for a selection.
// Implementations fall back to presence=true and FallbackBBox when they have
// no entry.
type Lookup interface {
	IsSpeciesPresent(ctx context.Context, prefecture, part, species string) (bool, error)
	BBox(ctx context.Context, prefecture, part string) (spatial.BoundingBox, error)
}

// FileLookup reads the JSON lookup files on every call. Missing files are
// not an error; malformed ones are.
type FileLookup struct {
	Dir string
}

// NewFileLookup creates a lookup over dir
func NewFileLookup(dir string) *FileLookup {
	return &FileLookup{Dir: dir}
}

// IsSpeciesPresent consults presence.json: {"<key>": {"<species>": bool}}
func (l *FileLookup) IsSpeciesPresent(ctx context.Context, prefecture, part, species string) (bool, error) {
	var data map[string]map[string]bool
	found, err := l.readJSON(PresenceFile, &data)
	if err != nil || !found {
		return true, err
	}
	present, ok := data[Key(prefecture, part)][species]
	if !ok {
		return true, nil
	}
	return present, nil
}

// BBox consults pref_bboxes.json: {"<key>": [min_lon, min_lat, max_lon, max_lat]}.
// Only the requested entry is decoded, so a bad entry under another key does
// not affect this one. Arrays that are not exactly four numbers long are
// ignored; values that are not arrays of numbers are an error.
func (l *FileLookup) BBox(ctx context.Context, prefecture, part string) (spatial.BoundingBox, error) {
	var data map[string]json.RawMessage
	found, err := l.readJSON(BBoxFile, &data)
	if err != nil {
		return spatial.BoundingBox{}, err
	}
	key := Key(prefecture, part)
	if raw, ok := data[key]; found && ok {
		b, ok, err := parseBBox(raw)
		if err != nil {
			return spatial.BoundingBox{}, fmt.Errorf("failed to parse %s entry %q: %w", BBoxFile, key, err)
		}
		if ok {
			return b, nil
		}
	}
	return FallbackBBox(prefecture, part)
}

func parseBBox(raw json.RawMessage) (spatial.BoundingBox, bool, error) {
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return spatial.BoundingBox{}, false, err
	}
	if len(v) != 4 {
		return spatial.BoundingBox{}, false, nil
	}
	return spatial.NewBoundingBox(v[0], v[1], v[2], v[3]), true, nil
}

func (l *FileLookup) readJSON(name string, v any) (bool, error) {
	if l.Dir == "" {
		return false, nil
	}
	path := filepath.Join(l.Dir, name)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// Presence returns the whole presence table, empty when the file is missing
func (l *FileLookup) Presence() (map[string]map[string]bool, error) {
	data := map[string]map[string]bool{}
	if _, err := l.readJSON(PresenceFile, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// BBoxes returns every well-formed bbox entry, normalized. Malformed entries
// are skipped and their keys returned alongside.
func (l *FileLookup) BBoxes() (map[string]spatial.BoundingBox, []string, error) {
	var data map[string]json.RawMessage
	if _, err := l.readJSON(BBoxFile, &data); err != nil {
		return nil, nil, err
	}
	out := make(map[string]spatial.BoundingBox, len(data))
	var skipped []string
	for key, raw := range data {
		b, ok, err := parseBBox(raw)
		if err != nil || !ok {
			skipped = append(skipped, key)
			continue
		}
		out[key] = b
	}
	sort.Strings(skipped)
	return out, skipped, nil
}
