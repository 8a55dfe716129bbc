package classify

import (
	"fmt"
	"strings"
)

// maxContentChars bounds how much page text goes into a prompt;
// anything past this adds tokens without adding signal.
const maxContentChars = 4000

// Input is the material available when classifying a bookmark.
// SkipLocal bypasses the local model for this request even when one is
// configured.
type Input struct {
	URL       string
	Title     string
	Body      string
	SkipLocal bool
}

func buildPrompt(in Input) string {
	content := strings.TrimSpace(in.Body)
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var b strings.Builder
	b.WriteString("Analyze this web page and respond with ONLY a JSON object, no other text.\n\n")
	fmt.Fprintf(&b, "URL: %s\n", in.URL)
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	if content != "" {
		fmt.Fprintf(&b, "Content:\n%s\n", content)
	}
	b.WriteString(`
Respond with exactly this JSON structure:
{"keywords": ["up to 5 keywords, most relevant first"], "summary": "one or two sentence summary", "folder_path": "/category/subcategory"}

The folder_path groups similar bookmarks, e.g. /tech/programming, /news, /recipes. Use lowercase path segments.`)
	return b.String()
}
