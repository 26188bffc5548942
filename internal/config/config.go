package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port    string
	GinMode string

	// DataDir holds presence.json and pref_bboxes.json
	DataDir string
	// LookupDB, when set, replaces the JSON files with a SQLite lookup
	LookupDB string

	MeshCacheSize int64         // cells held by the mesh cache across all entries
	CacheTTL      time.Duration // 0 keeps meshes until evicted

	DefaultCellKm    float64
	DefaultPaddingKm float64

	RateLimit  int // requests per window per IP, 0 disables
	RateWindow time.Duration
}

// Load 加载配置. A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:          getenvDefault("PORT", ":8080"),
		GinMode:       getenvDefault("GIN_MODE", "release"),
		DataDir:       getenvDefault("DATA_DIR", "./data"),
		LookupDB:      os.Getenv("LOOKUP_DB"),
		MeshCacheSize: int64(getenvInt("MESH_CACHE_SIZE", 2_000_000)),
		RateLimit:     getenvInt("RATE_LIMIT", 120),
	}

	var err error
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getenvDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.DefaultCellKm, err = getenvFloat("DEFAULT_CELL_KM", 1); err != nil {
		return nil, err
	}
	if cfg.DefaultPaddingKm, err = getenvFloat("DEFAULT_PADDING_KM", 0); err != nil {
		return nil, err
	}

	// Accept both "8080" and ":8080"
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
