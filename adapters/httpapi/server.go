// Package httpapi is the gin-based HTTP surface spec §6 defines: health,
// profile, compare, and a usage-doc route, wrapped in rate limiting, CORS,
// and a body-size ceiling. Grounded on the teacher's ui/server.go gin
// wiring style (router as a struct field, handlers as methods).
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"dataprofiler/internal/config"
	"dataprofiler/internal/logging"
	"dataprofiler/internal/orchestrator"
)

const maxBodyBytes = 50 * 1024 * 1024 // 50 MiB, spec §6

var startTime = time.Now()

// Server wires the orchestrator behind the documented routes.
type Server struct {
	router *gin.Engine
	orch   *orchestrator.Orchestrator
	cfg    *config.Config
	log    *logging.Logger
}

// New builds the HTTP server, registering routes and middleware.
func New(orch *orchestrator.Orchestrator, cfg *config.Config, log *logging.Logger) *Server {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logging.Default
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(bodySizeLimit(maxBodyBytes))
	router.Use(corsMiddleware(cfg.CORS))
	router.Use(rateLimitMiddleware(cfg.RateLimit))

	s := &Server{router: router, orch: orch, cfg: cfg, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/profile", s.handleProfileUsage)
	api.POST("/profile", s.handleProfile)
	api.POST("/profile/xlsx", s.handleProfileXLSX)
	api.POST("/compare", s.handleCompare)
}

// Run starts the HTTP listener on cfg.Server.Port.
func (s *Server) Run() error {
	return s.router.Run(":" + trimPort(s.cfg.Server.Port))
}

func trimPort(port string) string {
	if len(port) > 0 && port[0] == ':' {
		return port[1:]
	}
	return port
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
