package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/afeldman/gmark/internal/logger"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><title>Hello</title></html>"))
	}))
	defer srv.Close()

	f := New(2*time.Second, logger.Nop())
	page := f.Fetch(context.Background(), srv.URL)

	if page.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", page.StatusCode)
	}
	if !strings.Contains(page.Body, "<title>Hello</title>") {
		t.Errorf("body = %q, want title tag", page.Body)
	}
	if page.FinalURL != srv.URL {
		t.Errorf("final url = %q, want %q", page.FinalURL, srv.URL)
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved here"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := New(2*time.Second, logger.Nop())
	page := f.Fetch(context.Background(), srv.URL+"/old")

	if page.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", page.StatusCode)
	}
	if page.FinalURL != srv.URL+"/new" {
		t.Errorf("final url = %q, want redirect target", page.FinalURL)
	}
	if page.Body != "moved here" {
		t.Errorf("body = %q", page.Body)
	}
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := New(2*time.Second, logger.Nop())
	page := f.Fetch(context.Background(), srv.URL)

	if page.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", page.StatusCode)
	}
	if page.Body != "" {
		t.Errorf("body = %q, want empty on 429", page.Body)
	}
}

func TestFetchTransportError(t *testing.T) {
	f := New(500*time.Millisecond, logger.Nop())
	// Nothing listens here.
	page := f.Fetch(context.Background(), "http://127.0.0.1:1/never")

	if page.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", page.StatusCode)
	}
	if page.Body != "" {
		t.Errorf("body = %q, want empty", page.Body)
	}
	if page.FinalURL != "http://127.0.0.1:1/never" {
		t.Errorf("final url = %q, want requested url", page.FinalURL)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	f := New(50*time.Millisecond, logger.Nop())
	page := f.Fetch(context.Background(), srv.URL)

	if page.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 on timeout", page.StatusCode)
	}
}
