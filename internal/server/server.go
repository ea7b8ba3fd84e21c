// Package server exposes the content graph over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/gin-gonic/gin"

	"github.com/awakefm/artist-node/internal/graph"
)

// Server holds the HTTP surface. The graph is read through a swappable
// handle so a rebuild can replace it under live traffic.
type Server struct {
	handle  *graph.Handle
	content billy.Filesystem
}

func New(handle *graph.Handle, content billy.Filesystem) *Server {
	return &Server{handle: handle, content: content}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	api := r.Group("/api")
	api.GET("/nav", s.handleNav)
	api.GET("/page", s.handlePage)
	api.GET("/collection", s.handleCollection)
	api.GET("/collection/find-page", s.handleFindPage)

	r.GET("/content/*filepath", s.handleContent)
	r.GET("/healthz", s.handleHealthz)
	return r
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	slog.Info("listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) ops() *graph.GraphOps { return s.handle.Ops() }

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"dur", time.Since(start))
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"nodes":  s.ops().Graph().Len(),
	})
}
