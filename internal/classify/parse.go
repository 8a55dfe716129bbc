package classify

import (
	"encoding/json"
	"errors"
	"strings"
)

// llmResult is the JSON contract both AI providers are prompted to emit.
type llmResult struct {
	Keywords   []string `json:"keywords"`
	Summary    string   `json:"summary"`
	FolderPath string   `json:"folder_path"`
}

var errNoJSON = errors.New("no JSON object in model output")

// parseModelOutput pulls the first {...} object out of raw model text
// and decodes it. Models wrap their answer in prose or code fences
// often enough that decoding the whole response is hopeless.
func parseModelOutput(text string) (*llmResult, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, errNoJSON
	}

	depth := 0
	end := -1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, errNoJSON
	}

	var out llmResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
