package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afeldman/gmark/internal/classify"
	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/fetch"
	"github.com/afeldman/gmark/internal/folder"
	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/httpserver/routes"
	"github.com/afeldman/gmark/internal/ingest"
	"github.com/afeldman/gmark/internal/logger"
	"github.com/afeldman/gmark/internal/store/sqlite"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, url string) fetch.Page {
	return fetch.Page{
		Body:       "<html><title>Stub Page</title></html>",
		FinalURL:   url,
		StatusCode: 200,
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	st, err := sqlite.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := logger.Nop()
	classifier := classify.New(classify.Options{
		Heuristic: classify.NewHeuristicProvider(classify.DefaultRules()),
	}, log)
	resolver := folder.NewResolver(st, log)
	pipeline := ingest.New(stubFetcher{}, classifier, resolver, st, log)

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Store:     st,
		Pipeline:  pipeline,
		Resolver:  resolver,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url string, userID int64, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCreateBookmarkEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, map[string]any{
		"url": "https://github.com/x/y",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	res := decode[ingest.Result](t, resp)
	if res.SuggestedFolderPath != "/tech/code" {
		t.Errorf("suggested folder = %q", res.SuggestedFolderPath)
	}
	b := res.Bookmark
	if b.Title != "Stub Page" {
		t.Errorf("title = %q", b.Title)
	}
	if b.FolderID == nil {
		t.Error("bookmark not filed into a folder")
	}
	if b.UserID != 1 {
		t.Errorf("user_id = %d", b.UserID)
	}
}

func TestCreateBookmarkValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"relative url", map[string]any{"url": "/no/scheme"}, http.StatusBadRequest},
		{"ftp url", map[string]any{"url": "ftp://example.com"}, http.StatusBadRequest},
		{"bad mode", map[string]any{"url": "https://a.example", "mode": "secret"}, http.StatusBadRequest},
		{"missing url", map[string]any{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestCreateBookmarkConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]any{"url": "https://example.com", "auto_classify": false}
	if resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, body); resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create: %d, want 409", resp.StatusCode)
	}
	// Another user may save the same URL.
	if resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 2, body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("other user create: %d, want 201", resp.StatusCode)
	}
}

func TestMissingUserHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/bookmarks", 0, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestBookmarkOwnership(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, map[string]any{
		"url": "https://example.com", "auto_classify": false,
	})
	b := decode[ingest.Result](t, resp).Bookmark

	other := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/bookmarks/%d", srv.URL, b.ID), 2, nil)
	if other.StatusCode != http.StatusNotFound {
		t.Errorf("other user's read = %d, want 404", other.StatusCode)
	}
	own := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/bookmarks/%d", srv.URL, b.ID), 1, nil)
	if own.StatusCode != http.StatusOK {
		t.Errorf("owner's read = %d, want 200", own.StatusCode)
	}
}

func TestMoveBookmarkEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/bookmarks", 1, map[string]any{
		"url": "https://example.com", "auto_classify": false,
	})
	b := decode[ingest.Result](t, resp).Bookmark

	moved := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/bookmarks/%d/move", srv.URL, b.ID), 1,
		map[string]any{"folder_path": "/work/reading"})
	if moved.StatusCode != http.StatusOK {
		t.Fatalf("move = %d, want 200", moved.StatusCode)
	}

	f, err := st.GetFolderByPath(context.Background(), 1, "/work/reading")
	if err != nil {
		t.Fatalf("folder not created: %v", err)
	}
	got := decode[domain.Bookmark](t, moved)
	if got.FolderID == nil || *got.FolderID != f.ID {
		t.Errorf("folder id = %v, want %d", got.FolderID, f.ID)
	}
}

func TestFolderTreeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/tech/go", "/tech/js", "/news"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/folders", 1, map[string]any{"path": path})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %s: %d", path, resp.StatusCode)
		}
	}
	// user 2's bookmarks should never show in user 1's tree
	doJSON(t, http.MethodPost, srv.URL+"/api/folders", 2, map[string]any{"path": "/private"})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/folders/tree", 1, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tree = %d", resp.StatusCode)
	}

	tree := decode[[]*domain.FolderNode](t, resp)
	if len(tree) != 2 {
		t.Fatalf("got %d roots, want 2 (tech, news)", len(tree))
	}
	var tech *domain.FolderNode
	for _, n := range tree {
		if n.Name == "tech" {
			tech = n
		}
		if n.Name == "private" {
			t.Error("another user's folder leaked into the tree")
		}
	}
	if tech == nil || len(tech.Children) != 2 {
		t.Fatalf("tech subtree = %+v, want 2 children", tech)
	}
}

func TestDeleteFolderEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/folders", 1, map[string]any{"path": "/tech"})
	f := decode[domain.Folder](t, resp)

	if resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/folders/%d", srv.URL, f.ID), 2, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("other user's delete = %d, want 404", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/folders/%d", srv.URL, f.ID), 1, nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("owner's delete = %d, want 204", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
}
