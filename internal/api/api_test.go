package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"disco/internal/algebra"
	"disco/internal/drs"
	"disco/internal/logging"
	"disco/internal/network"
	"disco/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := storage.Open(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	columns := []storage.ColumnRecord{
		{Nid: drs.FieldID("dwh", "orders", "order_id"), DBName: "dwh", SourceName: "orders", FieldName: "order_id"},
		{Nid: drs.FieldID("dwh", "orders", "customer_id"), DBName: "dwh", SourceName: "orders", FieldName: "customer_id"},
		{Nid: drs.FieldID("dwh", "customers", "customer_id"), DBName: "dwh", SourceName: "customers", FieldName: "customer_id"},
		{Nid: drs.FieldID("dwh", "customers", "customer_name"), DBName: "dwh", SourceName: "customers", FieldName: "customer_name"},
	}
	if err := db.InsertColumns(columns); err != nil {
		t.Fatalf("InsertColumns() error = %v", err)
	}
	if err := db.InsertEdges([]storage.EdgeRecord{
		{FromNid: columns[1].Nid, ToNid: columns[2].Nid, Relation: drs.RelPKFK, Score: 0.9},
	}); err != nil {
		t.Fatalf("InsertEdges() error = %v", err)
	}

	net, err := network.Load(db)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	engine := algebra.New(net, storage.NewStore(db), logging.Discard())
	return NewServer(DefaultServerConfig(), engine, db, logging.Discard())
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeDRS(t *testing.T, rec *httptest.ResponseRecorder) DRSResponse {
	t.Helper()
	var resp DRSResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealthAndStatus(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/status status = %d", rec.Code)
	}
	var status map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if status["columns"].(float64) != 4 || status["edges"].(float64) != 1 {
		t.Errorf("status = %v", status)
	}
}

func TestListAndGetTables(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/tables", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/tables status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orders") || !strings.Contains(rec.Body.String(), "customers") {
		t.Errorf("/tables body = %s", rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/tables/orders?explain=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/tables/orders status = %d", rec.Code)
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 2 || resp.Mode != "fields" {
		t.Errorf("/tables/orders = %+v", resp)
	}
	if len(resp.Provenance) == 0 {
		t.Error("Expected provenance with explain=true")
	}

	rec = doJSON(t, s, http.MethodGet, "/tables/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("/tables/missing status = %d, want 404", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/search?q=customer_id&scope=field", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/search status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 2 {
		t.Errorf("search size = %d, want 2", resp.Size)
	}

	rec = doJSON(t, s, http.MethodGet, "/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("/search without q status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/search?q=x&scope=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("/search with bad scope status = %d, want 400", rec.Code)
	}
}

func TestUnionEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/query/union", pairRequest{
		A: InputSpec{Table: "orders"},
		B: InputSpec{Table: "customers"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("/query/union status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 4 {
		t.Errorf("union size = %d, want 4", resp.Size)
	}
}

func TestNeighborsEndpoint(t *testing.T) {
	s := newTestServer(t)
	oc := drs.FieldID("dwh", "orders", "customer_id")

	rec := doJSON(t, s, http.MethodPost, "/query/neighbors", neighborsRequest{
		Input:    InputSpec{Nid: &oc},
		Relation: "pkfk",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("/query/neighbors status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 1 || resp.Hits[0].SourceName != "customers" {
		t.Errorf("neighbors = %+v", resp)
	}

	rec = doJSON(t, s, http.MethodPost, "/query/neighbors", neighborsRequest{
		Input:    InputSpec{Nid: &oc},
		Relation: "bogus",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad relation status = %d, want 400", rec.Code)
	}
}

func TestPathsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/query/paths", pathsRequest{
		A:        InputSpec{Table: "orders"},
		B:        InputSpec{Table: "customers"},
		Relation: "pkfk",
		MaxHops:  2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("/query/paths status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 2 {
		t.Errorf("paths size = %d, want the 2 linked columns", resp.Size)
	}
}

func TestTraverseEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/query/traverse", traverseRequest{
		Input:    InputSpec{Table: "orders"},
		Relation: "pkfk",
		MaxHops:  2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("/query/traverse status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeDRS(t, rec)
	if resp.Size != 1 {
		t.Errorf("traverse size = %d, want 1", resp.Size)
	}
}

func TestAnnotationFlow(t *testing.T) {
	s := newTestServer(t)
	oc := drs.FieldID("dwh", "orders", "customer_id")

	rec := doJSON(t, s, http.MethodPost, "/annotations", annotateRequest{
		Author: "raul",
		Text:   "join key for customer lookups",
		Class:  "insight",
		Source: InputSpec{Nid: &oc},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("/annotations status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created MRSResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode annotation response: %v", err)
	}
	if created.Size != 1 {
		t.Fatalf("Created %d annotations, want 1", created.Size)
	}
	annID := created.Hits[0].ID

	rec = doJSON(t, s, http.MethodPost, "/annotations/"+annID+"/comments", map[string]interface{}{
		"author":   "ana",
		"comments": []string{"confirmed in production"},
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("comments status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/annotations/"+annID+"/tags", map[string]interface{}{
		"author": "ana",
		"tags":   []string{"joins"},
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("tags status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/metadata?nid="+strconv.FormatUint(oc, 10), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metadata status = %d", rec.Code)
	}
	var got MRSResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode metadata response: %v", err)
	}
	if got.Size != 1 || got.Hits[0].Text != "join key for customer lookups" {
		t.Errorf("metadata = %+v", got)
	}

	rec = doJSON(t, s, http.MethodGet, "/mdsearch?q=lookups", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/mdsearch status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode mdsearch response: %v", err)
	}
	if got.Size != 1 {
		t.Errorf("mdsearch size = %d, want 1", got.Size)
	}
}

func TestCommentOnMissingAnnotation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/annotations/nope/comments", map[string]interface{}{
		"author":   "ana",
		"comments": []string{"x"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/search?q=x", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /search status = %d, want 405", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/query/union", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /query/union status = %d, want 405", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID response header")
	}
}
