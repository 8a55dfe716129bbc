package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afeldman/gmark/internal/domain"
)

func TestLocalProviderClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		var req localRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Message == "" {
			t.Error("empty prompt")
		}
		json.NewEncoder(w).Encode(map[string]string{
			"textResponse": `The result is {"keywords":["go"],"summary":"about go","folder_path":"/tech"}`,
		})
	}))
	defer srv.Close()

	p := NewLocalProvider(srv.URL, "secret", time.Second)
	got, err := p.Classify(context.Background(), Input{URL: "https://go.dev", Title: "Go"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Source != domain.SourceLocal {
		t.Errorf("source = %q", got.Source)
	}
	if got.FolderPath != "/tech" {
		t.Errorf("folder = %q", got.FolderPath)
	}
}

func TestLocalProviderRawBodyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"keywords":[],"summary":"s","folder_path":"/x"}`))
	}))
	defer srv.Close()

	p := NewLocalProvider(srv.URL, "", time.Second)
	got, err := p.Classify(context.Background(), Input{URL: "u", Title: "t"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.FolderPath != "/x" {
		t.Errorf("folder = %q", got.FolderPath)
	}
}

func TestLocalProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewLocalProvider(srv.URL, "", time.Second)
	if _, err := p.Classify(context.Background(), Input{URL: "u"}); err == nil {
		t.Fatal("want error on 500")
	}
}

func TestCloudProviderClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{
					"role":    "assistant",
					"content": `{"keywords":["news"],"summary":"daily news","folder_path":"/news"}`,
				},
			}},
		})
	}))
	defer srv.Close()

	p := NewCloudProvider(srv.URL, "gpt-4o-mini", "sk-test", time.Second)
	got, err := p.Classify(context.Background(), Input{URL: "https://news.example.com", Title: "News"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Source != domain.SourceCloud {
		t.Errorf("source = %q", got.Source)
	}
	if got.FolderPath != "/news" {
		t.Errorf("folder = %q", got.FolderPath)
	}
}

func TestCloudProviderNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewCloudProvider(srv.URL, "m", "k", time.Second)
	if _, err := p.Classify(context.Background(), Input{URL: "u"}); err == nil {
		t.Fatal("want error on empty choices")
	}
}
