// Package server wires the offer catalog into an HTTP API:
// GET /api/offers with filter/sort/paginate/project query parameters,
// plus a health endpoint.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"offers-api/internal/query"
	"offers-api/internal/store"
)

type Server struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Server {
	return &Server{store: st, log: log}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log), CORS(), Brotli())

	r.GET("/api/offers", s.handleOffers)
	r.GET("/health", s.handleHealth)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

func (s *Server) handleOffers(c *gin.Context) {
	filters := ParseQuery(c.Request.URL.Query())

	rawOffers, err := s.store.RawOffers(c.Request.Context())
	if err != nil {
		s.log.Error("offer load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, query.Run(rawOffers, filters))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
