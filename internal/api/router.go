package api

import (
	"embed"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/filters"
	"github.com/jengzang/wildlife-bi-go/internal/handler"
	"github.com/jengzang/wildlife-bi-go/internal/middleware"
	"github.com/jengzang/wildlife-bi-go/pkg/response"
)

//go:embed web/index.html
var web embed.FS

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Mesh      *handler.MeshHandler
	Region    *handler.RegionHandler
}

// SetupRouter 设置路由. limiter may be nil to serve the API unthrottled.
func SetupRouter(h Handlers, limiter *middleware.RateLimiter) *gin.Engine {
	if err := filters.RegisterBindingRules(); err != nil {
		log.Printf("[Router] Custom validation rules not registered: %v", err)
	}

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Wildlife BI API is running",
		})
	})

	// Dashboard page
	r.GET("/", func(c *gin.Context) {
		page, err := web.ReadFile("web/index.html")
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	{
		api.GET("/options", h.Region.GetOptions)
		api.GET("/regions/center", h.Region.GetCenter)

		api.GET("/dashboard", h.Dashboard.GetDashboard)

		api.GET("/mesh", h.Mesh.GetMesh)
		api.GET("/mesh/cache", h.Mesh.GetCacheStats)
		api.POST("/heatmap", h.Mesh.RenderHeatmap)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found: "+c.Request.URL.Path)
	})

	return r
}
