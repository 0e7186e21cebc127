package handlers

import (
	"time"

	"academic-planner/backend/internal/cache"
	"academic-planner/backend/internal/config"
	"academic-planner/backend/internal/middleware"
	"academic-planner/backend/internal/monitoring"
	"academic-planner/backend/internal/notify"
	"academic-planner/backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the HTTP surface needs. Cache and Limiter may be
// nil, the routes then run uncached and unthrottled.
type Deps struct {
	Store   *store.Store
	Feed    *notify.Feed
	Cache   cache.Cache
	Monitor *monitoring.Monitor
	Limiter *middleware.RateLimiter
	CORS    config.CORSConfig
}

// NewRouter builds the gin engine with the shared middleware chain and every
// API route registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())
	if deps.Monitor != nil {
		router.Use(deps.Monitor.Middleware())
	}
	if deps.Limiter != nil {
		router.Use(deps.Limiter.Middleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	taskHandler := NewTaskHandler(deps.Store, deps.Cache)
	courseHandler := NewCourseHandler(deps.Store)
	settingsHandler := NewSettingsHandler(deps.Store)
	snapshotHandler := NewSnapshotHandler(deps.Store)
	notificationHandler := NewNotificationHandler(deps.Feed)

	api := router.Group("/api")
	{
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks", taskHandler.GetTasks)
		api.PATCH("/tasks/:id/toggle", taskHandler.ToggleTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.POST("/courses", courseHandler.CreateCourse)
		api.GET("/courses", courseHandler.GetCourses)
		api.DELETE("/courses/:id", courseHandler.DeleteCourse)

		api.GET("/stats", taskHandler.GetStats)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)

		api.GET("/snapshot", snapshotHandler.Export)
		api.POST("/snapshot", snapshotHandler.Import)

		api.GET("/notifications", notificationHandler.GetNotifications)
	}

	if deps.Monitor != nil {
		router.GET("/health", deps.Monitor.HealthHandler())
		router.GET("/metrics", deps.Monitor.MetricsHandler())
	}

	return router
}
