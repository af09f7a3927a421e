package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	database "chartsync/internal/db"
)

// Server exposes the ingested catalog read-only: today's chart per
// platform plus track lookups. Nothing here mutates the store.
type Server struct {
	db     *database.Client
	router *gin.Engine
}

func New(db *database.Client) *Server {
	s := &Server{
		db:     db,
		router: gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "chartsync"})
	})

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/rankings/:platform", s.GetRankings)
		v1.GET("/music/:id", s.GetMusic)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
