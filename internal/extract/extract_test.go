package extract

import "testing"

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "simple title",
			body:      "<html><head><title>Go Blog</title></head><body></body></html>",
			wantTitle: "Go Blog",
		},
		{
			name:      "whitespace collapsed",
			body:      "<title>\n  The   Go\n\tBlog  </title>",
			wantTitle: "The Go Blog",
		},
		{
			name:      "first title wins",
			body:      "<title>First</title><title>Second</title>",
			wantTitle: "First",
		},
		{
			name:      "meta description",
			body:      `<head><title>T</title><meta name="description" content="A page about Go"></head>`,
			wantTitle: "T",
			wantDesc:  "A page about Go",
		},
		{
			name:      "empty body",
			body:      "",
			wantTitle: PlaceholderTitle,
		},
		{
			name:      "no title tag",
			body:      "<html><body><h1>Heading</h1></body></html>",
			wantTitle: PlaceholderTitle,
		},
		{
			name:      "empty title tag",
			body:      "<title>   </title>",
			wantTitle: PlaceholderTitle,
		},
		{
			name:      "not html at all",
			body:      `{"json": true}`,
			wantTitle: PlaceholderTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHTML(tt.body)
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", got.Description, tt.wantDesc)
			}
		})
	}
}
