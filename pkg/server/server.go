// Package server exposes the ingestion and question-answering pipeline over
// HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/config"
	"github.com/talentgraph/talentgraph/pkg/server/handlers"
)

// Server represents the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	client *talentgraph.Client
	server *http.Server
}

// New creates a new server instance.
func New(cfg *config.Config, client *talentgraph.Client) *Server {
	return &Server{
		config: cfg,
		client: client,
	}
}

// Setup sets up the server routes and middleware.
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes.
func (s *Server) setupRoutes() {
	index := handlers.NewIndex(s.client)
	healthHandler := handlers.NewHealthHandler(s.client)
	ingestHandler := handlers.NewIngestHandler(s.client, index, s.config.Ingest.ResumeDir)
	queryHandler := handlers.NewQueryHandler(s.client, index)
	atsHandler := handlers.NewATSHandler(s.client, s.config.Ingest.ResumeDir)
	candidatesHandler := handlers.NewCandidatesHandler(s.client)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)
	s.router.GET("/health/detailed", healthHandler.DetailedHealthCheck)

	// Ledger status
	s.router.GET("/status", ingestHandler.Status)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/ingest", ingestHandler.Ingest)
		v1.POST("/query", queryHandler.Query)
		v1.GET("/status", ingestHandler.Status)
		v1.POST("/ats/analyze", atsHandler.Analyze)
		v1.POST("/ats/score", atsHandler.Score)
		v1.GET("/candidates", candidatesHandler.List)
		v1.GET("/candidates/:name", candidatesHandler.Get)
	}
}

// Start starts the server.
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
