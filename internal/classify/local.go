package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/afeldman/gmark/internal/domain"
)

// LocalProvider talks to a self-hosted AnythingLLM-style chat endpoint.
type LocalProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewLocalProvider(endpoint, apiKey string, timeout time.Duration) *LocalProvider {
	return &LocalProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type localRequest struct {
	Message string `json:"message"`
}

type localResponse struct {
	TextResponse string `json:"textResponse"`
}

func (p *LocalProvider) Classify(ctx context.Context, in Input) (*domain.Classification, error) {
	payload, err := json.Marshal(localRequest{Message: buildPrompt(in)})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call local model: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read local model response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("local model returned %d", resp.StatusCode)
	}

	// AnythingLLM wraps the answer in textResponse; fall back to the
	// raw body for servers that return bare text.
	text := string(body)
	var wrapped localResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.TextResponse != "" {
		text = wrapped.TextResponse
	}

	out, err := parseModelOutput(text)
	if err != nil {
		return nil, fmt.Errorf("parse local model output: %w", err)
	}

	return &domain.Classification{
		Keywords:   out.Keywords,
		Summary:    out.Summary,
		FolderPath: out.FolderPath,
		Source:     domain.SourceLocal,
	}, nil
}
