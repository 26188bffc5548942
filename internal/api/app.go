package api

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/cache"
	"github.com/jengzang/wildlife-bi-go/internal/config"
	"github.com/jengzang/wildlife-bi-go/internal/database"
	"github.com/jengzang/wildlife-bi-go/internal/handler"
	"github.com/jengzang/wildlife-bi-go/internal/heatmap"
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"github.com/jengzang/wildlife-bi-go/internal/middleware"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/internal/repository"
	"github.com/jengzang/wildlife-bi-go/internal/service"
)

// App is the wired HTTP application
type App struct {
	Engine *gin.Engine

	db      *sql.DB
	meshes  *cache.Memo[*mesh.GridMesh]
	figures *cache.Memo[*heatmap.Figure]
	limiter *middleware.RateLimiter
}

// NewApp builds the lookup, caches, services and router for cfg
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{}

	var lookup region.Lookup
	if cfg.LookupDB != "" {
		db, err := database.Open(database.Config{Path: cfg.LookupDB, ReadOnly: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open lookup database: %w", err)
		}
		app.db = db
		lookup = repository.NewLookupRepository(db)
		log.Printf("[App] Using SQLite lookup %s", cfg.LookupDB)
	} else {
		lookup = region.NewFileLookup(cfg.DataDir)
		log.Printf("[App] Using JSON lookup files in %s", cfg.DataDir)
	}

	app.meshes = cache.New[*mesh.GridMesh]("mesh", cache.Config{
		MaxSize:      mesh.WeightForCells(cfg.MeshCacheSize),
		ItemsToPrune: cache.DefaultConfig().ItemsToPrune,
		TTL:          cfg.CacheTTL,
	})
	app.figures = cache.New[*heatmap.Figure]("basemap", cache.Config{MaxSize: 1, ItemsToPrune: 1})

	meshService := service.NewMeshService(app.meshes, service.MeshDefaults{
		CellSizeKm: cfg.DefaultCellKm,
		PaddingKm:  cfg.DefaultPaddingKm,
	})
	dashboardService := service.NewDashboardService(lookup, meshService, app.figures)
	heatmapService := service.NewHeatmapService(meshService)

	app.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	app.Engine = SetupRouter(Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Mesh:      handler.NewMeshHandler(meshService, heatmapService),
		Region:    handler.NewRegionHandler(lookup),
	}, app.limiter)
	return app, nil
}

// Close stops the rate limiter and the caches, then closes the lookup database
func (a *App) Close() error {
	a.limiter.Stop()
	a.meshes.Stop()
	a.figures.Stop()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
