package api

import (
	"net/http"

	"disco/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and readiness checks
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	// System status
	s.router.HandleFunc("/status", s.handleStatus)

	// Catalog browsing
	s.router.HandleFunc("/tables", s.handleListTables)
	s.router.HandleFunc("/tables/", s.handleGetTable) // GET /tables/:name

	// Discovery queries
	s.router.HandleFunc("/search", s.handleSearch) // GET /search?q=...
	s.router.HandleFunc("/query/union", s.handleUnion)
	s.router.HandleFunc("/query/intersect", s.handleIntersection)
	s.router.HandleFunc("/query/diff", s.handleDifference)
	s.router.HandleFunc("/query/neighbors", s.handleNeighbors)
	s.router.HandleFunc("/query/paths", s.handlePaths)
	s.router.HandleFunc("/query/traverse", s.handleTraverse)

	// Metadata
	s.router.HandleFunc("/annotations", s.handleAnnotations)   // POST create
	s.router.HandleFunc("/annotations/", s.handleAnnotationBy) // POST /:id/comments, /:id/tags
	s.router.HandleFunc("/metadata", s.handleMetadata)         // GET /metadata?nid=...
	s.router.HandleFunc("/mdsearch", s.handleMDSearch)         // GET /mdsearch?q=...

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    "disco HTTP API",
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /ready - Readiness check",
			"GET /status - Catalog status",
			"GET /tables - List catalog tables",
			"GET /tables/:name - Columns of a table",
			"GET /search?q=query&scope=field|source|content - Keyword search",
			"POST /query/union - Union of two inputs",
			"POST /query/intersect - Intersection of two inputs",
			"POST /query/diff - Difference of two inputs",
			"POST /query/neighbors - Relation neighbors of an input",
			"POST /query/paths - Relation paths between two inputs",
			"POST /query/traverse - Bounded relation traversal",
			"POST /annotations - Annotate columns",
			"POST /annotations/:id/comments - Comment on an annotation",
			"POST /annotations/:id/tags - Tag an annotation",
			"GET /metadata?nid=...&relation=... - Stored metadata for a node",
			"GET /mdsearch?q=query - Keyword search over annotations",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
