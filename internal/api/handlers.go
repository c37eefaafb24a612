package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"disco/internal/algebra"
	"disco/internal/drs"
	"disco/internal/metadata"
	"disco/internal/version"
)

// handleHealth responds to liveness probes
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	WriteJSON(w, map[string]string{"status": "ok", "version": version.Version}, http.StatusOK)
}

// handleReady reports whether the store is reachable
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, _, err := s.db.Counts(); err != nil {
		WriteError(w, err, http.StatusServiceUnavailable)
		return
	}
	WriteJSON(w, map[string]string{"status": "ready"}, http.StatusOK)
}

// handleStatus reports catalog size
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	columns, edges, err := s.db.Counts()
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, map[string]interface{}{
		"version": version.Version,
		"columns": columns,
		"edges":   edges,
	}, http.StatusOK)
}

// handleListTables lists the catalog's tables
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tables, err := s.db.Tables()
	if err != nil {
		WriteDiscoError(w, err)
		return
	}

	type tableEntry struct {
		DBName     string `json:"dbName"`
		SourceName string `json:"sourceName"`
	}
	entries := make([]tableEntry, 0, len(tables))
	for _, t := range tables {
		entries = append(entries, tableEntry{DBName: t[0], SourceName: t[1]})
	}
	WriteJSON(w, map[string]interface{}{"tables": entries}, http.StatusOK)
}

// handleGetTable returns the columns of one table as a result set
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/tables/")
	if name == "" || strings.Contains(name, "/") {
		BadRequest(w, "table name required")
		return
	}

	d, err := s.engine.ToDRS(algebra.FromString(name))
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// handleSearch performs a keyword search over the catalog
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		BadRequest(w, "missing query parameter q")
		return
	}

	scope := algebra.ScopeField
	if raw := r.URL.Query().Get("scope"); raw != "" {
		parsed, ok := algebra.ParseSearchScope(raw)
		if !ok {
			BadRequest(w, "unknown search scope "+raw)
			return
		}
		scope = parsed
	}

	maxResults := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			BadRequest(w, "max must be a non-negative integer")
			return
		}
		maxResults = n
	}

	d, err := s.engine.KeywordSearch(q, scope, maxResults)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// pairRequest is the body of the binary set operations
type pairRequest struct {
	A InputSpec `json:"a"`
	B InputSpec `json:"b"`
}

func (s *Server) handleUnion(w http.ResponseWriter, r *http.Request) {
	s.handleCombination(w, r, s.engine.Union)
}

func (s *Server) handleIntersection(w http.ResponseWriter, r *http.Request) {
	s.handleCombination(w, r, s.engine.Intersection)
}

func (s *Server) handleDifference(w http.ResponseWriter, r *http.Request) {
	s.handleCombination(w, r, s.engine.Difference)
}

func (s *Server) handleCombination(w http.ResponseWriter, r *http.Request, op func(algebra.Input, algebra.Input) (*drs.DRS, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req pairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	d, err := op(req.A.ToInput(), req.B.ToInput())
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// neighborsRequest is the body of the neighbor query
type neighborsRequest struct {
	Input    InputSpec `json:"input"`
	Relation string    `json:"relation"`
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req neighborsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	rel, err := drs.ParseRelation(req.Relation)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	d, err := s.engine.NeighborSearch(req.Input.ToInput(), rel)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// pathsRequest is the body of the path query
type pathsRequest struct {
	A        InputSpec `json:"a"`
	B        InputSpec `json:"b"`
	Relation string    `json:"relation"`
	MaxHops  int       `json:"maxHops"`
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req pathsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	rel, err := drs.ParseRelation(req.Relation)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	if req.MaxHops <= 0 {
		BadRequest(w, "maxHops must be positive")
		return
	}

	d, err := s.engine.Paths(req.A.ToInput(), req.B.ToInput(), rel, req.MaxHops)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// traverseRequest is the body of the traversal query
type traverseRequest struct {
	Input    InputSpec `json:"input"`
	Relation string    `json:"relation"`
	MaxHops  int       `json:"maxHops"`
}

func (s *Server) handleTraverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req traverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	rel, err := drs.ParseRelation(req.Relation)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	if req.MaxHops <= 0 {
		BadRequest(w, "maxHops must be positive")
		return
	}

	d, err := s.engine.Traverse(req.Input.ToInput(), rel, req.MaxHops)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderDRS(d, wantExplain(r)), http.StatusOK)
}

// annotateRequest is the body of the annotation creation endpoint
type annotateRequest struct {
	Author   string     `json:"author"`
	Text     string     `json:"text"`
	Class    string     `json:"class"`
	Source   InputSpec  `json:"source"`
	Target   *InputSpec `json:"target,omitempty"`
	Relation string     `json:"relation,omitempty"`
}

func (s *Server) handleAnnotations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Author == "" || req.Text == "" {
		BadRequest(w, "author and text are required")
		return
	}

	class, err := metadata.ParseMDClass(req.Class)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	var ref *algebra.AnnotationRef
	if req.Relation != "" {
		if req.Target == nil {
			BadRequest(w, "relation requires a target")
			return
		}
		rel, err := metadata.ParseMDRelation(req.Relation)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		ref = &algebra.AnnotationRef{Target: req.Target.ToInput(), Relation: rel}
	}

	mrs, err := s.engine.Annotate(req.Author, req.Text, class, req.Source.ToInput(), ref)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderMRS(mrs), http.StatusCreated)
}

// handleAnnotationBy routes /annotations/:id/comments and /annotations/:id/tags
func (s *Server) handleAnnotationBy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/annotations/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	annotationID := parts[0]

	switch parts[1] {
	case "comments":
		var req struct {
			Author   string   `json:"author"`
			Comments []string `json:"comments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid request body: "+err.Error())
			return
		}
		if req.Author == "" || len(req.Comments) == 0 {
			BadRequest(w, "author and comments are required")
			return
		}
		mrs, err := s.engine.AddComments(req.Author, req.Comments, annotationID)
		if err != nil {
			WriteDiscoError(w, err)
			return
		}
		WriteJSON(w, renderMRS(mrs), http.StatusCreated)

	case "tags":
		var req struct {
			Author string   `json:"author"`
			Tags   []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid request body: "+err.Error())
			return
		}
		if req.Author == "" || len(req.Tags) == 0 {
			BadRequest(w, "author and tags are required")
			return
		}
		if err := s.engine.AddTags(req.Author, req.Tags, annotationID); err != nil {
			WriteDiscoError(w, err)
			return
		}
		WriteJSON(w, map[string]interface{}{"annotationId": annotationID, "tags": req.Tags}, http.StatusCreated)

	default:
		http.NotFound(w, r)
	}
}

// handleMetadata returns stored metadata for a node, optionally filtered
// by relation
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	in := algebra.NoInput()
	if raw := r.URL.Query().Get("nid"); raw != "" {
		nid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			BadRequest(w, "nid must be an unsigned integer")
			return
		}
		in = algebra.FromNid(nid)
	}

	var rel *metadata.MDRelation
	if raw := r.URL.Query().Get("relation"); raw != "" {
		parsed, err := metadata.ParseMDRelation(raw)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		rel = &parsed
	}

	mrs, err := s.engine.MDSearch(in, rel)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderMRS(mrs), http.StatusOK)
}

// handleMDSearch performs a keyword search over annotation text
func (s *Server) handleMDSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		BadRequest(w, "missing query parameter q")
		return
	}

	maxResults := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			BadRequest(w, "max must be a non-negative integer")
			return
		}
		maxResults = n
	}

	mrs, err := s.engine.MDKeywordSearch(q, maxResults)
	if err != nil {
		WriteDiscoError(w, err)
		return
	}
	WriteJSON(w, renderMRS(mrs), http.StatusOK)
}

func wantExplain(r *http.Request) bool {
	return r.URL.Query().Get("explain") == "true"
}
