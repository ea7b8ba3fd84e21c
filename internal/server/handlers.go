package server

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/awakefm/artist-node/internal/graph"
)

// handleNav serves the rendered navigation tree.
func (s *Server) handleNav(c *gin.Context) {
	c.JSON(http.StatusOK, s.ops().GetNav())
}

// handlePage serves a fully hydrated page payload. An empty path resolves
// to the site root.
func (s *Server) handlePage(c *gin.Context) {
	payload, err := s.ops().GetPage(c.Query("path"))
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// handleCollection serves a query-driven collection. Numeric params that
// fail to parse fall back to their defaults rather than erroring.
func (s *Server) handleCollection(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query param: path"})
		return
	}

	q := graph.CollectionQuery{
		Source:     c.DefaultQuery("source", graph.SourceFolder),
		Path:       p,
		Pattern:    c.Query("pattern"),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", 24),
		Sort:       c.Query("sort"),
		Limit:      intQuery(c, "limit", 0),
		Card:       c.Query("card"),
		LayoutMode: c.Query("mode"),
	}
	c.JSON(http.StatusOK, s.ops().GetCollection(q))
}

// handleFindPage locates which page of a collection holds a given item,
// so the frontend can deep-link into paginated collections.
func (s *Server) handleFindPage(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query param: path"})
		return
	}
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query param: item"})
		return
	}

	q := graph.CollectionQuery{
		Source:   c.DefaultQuery("source", graph.SourceFolder),
		Path:     p,
		Pattern:  c.Query("pattern"),
		PageSize: intQuery(c, "page_size", 24),
		Sort:     c.Query("sort"),
		Limit:    intQuery(c, "limit", 0),
	}
	page, ok := s.ops().FindItemPage(q, item)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// handleContent serves static assets (audio, images) out of the content
// tree. The backing filesystem is chrooted to the content root, but
// traversal attempts are rejected explicitly so they surface as 403
// instead of a lookup miss.
func (s *Server) handleContent(c *gin.Context) {
	raw := strings.TrimPrefix(c.Param("filepath"), "/")
	clean := path.Clean(raw)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		c.Status(http.StatusForbidden)
		return
	}

	info, err := s.content.Stat(clean)
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	f, err := s.content.Open(clean)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// intQuery parses an int query param, falling back to def when absent or
// malformed.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
