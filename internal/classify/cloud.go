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

// CloudProvider talks to an OpenAI-compatible chat-completions endpoint.
type CloudProvider struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func NewCloudProvider(endpoint, model, apiKey string, timeout time.Duration) *CloudProvider {
	return &CloudProvider{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *CloudProvider) Classify(ctx context.Context, in Input) (*domain.Classification, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a bookmark classifier. Respond with a single JSON object and nothing else."},
			{Role: "user", Content: buildPrompt(in)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call cloud model: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cloud model response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("cloud model returned %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("decode cloud model response: %w", err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("cloud model error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("cloud model returned no choices")
	}

	out, err := parseModelOutput(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse cloud model output: %w", err)
	}

	return &domain.Classification{
		Keywords:   out.Keywords,
		Summary:    out.Summary,
		FolderPath: out.FolderPath,
		Source:     domain.SourceCloud,
	}, nil
}
