package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/afeldman/gmark/internal/logger"
)

// maxBodyBytes caps how much of a page we read; titles live in the
// first few kilobytes but some pages inline large scripts before them.
const maxBodyBytes = 2 << 20

// Page is the outcome of fetching a URL. A failed fetch is still a
// Page: Body is empty and StatusCode records what went wrong, so the
// pipeline can degrade instead of aborting.
type Page struct {
	// Body is the UTF-8 page content, empty when the fetch failed.
	Body string
	// FinalURL is the URL after redirects, or the requested URL when
	// the fetch never completed.
	FinalURL string
	// StatusCode is the final HTTP status, or 500 for transport-level
	// failures (DNS, refused connection, timeout).
	StatusCode int
}

// Fetcher retrieves page content over HTTP. It never returns an error;
// failures are reported through Page.StatusCode.
type Fetcher struct {
	client *http.Client
	log    logger.Logger
}

// New builds a Fetcher with the given per-request timeout. Redirects
// are followed up to the client default of ten hops.
func New(timeout time.Duration, log logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch downloads url and returns its content. Rate-limited responses
// (429) and other non-2xx statuses yield an empty body with the status
// preserved.
func (f *Fetcher) Fetch(ctx context.Context, url string) Page {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.log.Warn("invalid fetch url", logger.String("url", url), logger.Error(err))
		return Page{FinalURL: url, StatusCode: http.StatusInternalServerError}
	}
	req.Header.Set("User-Agent", "gmark/1.0 (+bookmark-classifier)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("fetch failed", logger.String("url", url), logger.Error(err))
		return Page{FinalURL: url, StatusCode: http.StatusInternalServerError}
	}
	defer resp.Body.Close()

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Debug("fetch returned non-2xx",
			logger.String("url", url),
			logger.Int("status", resp.StatusCode))
		return Page{FinalURL: finalURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.log.Warn("fetch body read failed", logger.String("url", url), logger.Error(err))
		return Page{FinalURL: finalURL, StatusCode: http.StatusInternalServerError}
	}

	return Page{Body: string(body), FinalURL: finalURL, StatusCode: resp.StatusCode}
}
