package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	notesdto "github.com/johnquangdev/polyglot-minutes/internal/adapter/dto/notes"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

const serviceName = "polyglot-minutes"

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	notesHandler   *Notes
	archiveHandler *Archive
	metrics        http.Handler
}

// NewRouter creates a new router with all handlers. archiveHandler and
// metrics may be nil.
func NewRouter(cfg *config.Config, notesHandler *Notes, archiveHandler *Archive, metrics http.Handler) *Router {
	return &Router{
		cfg:            cfg,
		notesHandler:   notesHandler,
		archiveHandler: archiveHandler,
		metrics:        metrics,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.healthCheck)
	e.GET("/health", rt.healthCheck)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	rt.setupNotesRoutes(v1)
	rt.setupArchiveRoutes(v1)
}

// setupNotesRoutes configures the transcription and notes routes
func (rt *Router) setupNotesRoutes(g *echo.Group) {
	g.POST("/transcribe", rt.notesHandler.Transcribe)
	g.POST("/summarize", rt.notesHandler.Summarize)
	g.POST("/actions", rt.notesHandler.ExtractActions)

	notesGroup := g.Group("/notes")
	notesGroup.POST("", rt.notesHandler.GenerateNotes)
	notesGroup.GET("", rt.notesHandler.ListNotes)
	notesGroup.GET("/:id", rt.notesHandler.GetNotes)
	notesGroup.GET("/:id/download", rt.notesHandler.DownloadNotes)
	notesGroup.GET("/:id/minutes", rt.notesHandler.Minutes)
}

// setupArchiveRoutes configures object storage routes
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	if rt.archiveHandler != nil {
		g.GET("/notes/:id/audio", rt.archiveHandler.AudioURL)
		g.GET("/storage/info", rt.archiveHandler.BucketInfo)
	} else {
		g.GET("/notes/:id/audio", rt.notImplemented)
		g.GET("/storage/info", rt.notImplemented)
	}
}

// notImplemented returns 501 when object storage is disabled
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "Object storage is not enabled",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Set STORAGE_ENABLED=true to archive recordings",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return HandleSuccess(nil, c, notesdto.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}
