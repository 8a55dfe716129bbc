package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules drive the heuristic classifier. The zero value is unusable;
// start from DefaultRules or LoadRules.
type Rules struct {
	// Domains maps a hostname suffix to a folder path.
	Domains []DomainRule `yaml:"domains"`
	// Terms maps a set of trigger words to a folder path; the first
	// rule whose term appears in the URL or title wins.
	Terms []TermRule `yaml:"terms"`
	// Vocabulary is the keyword pool scanned against the URL and title.
	Vocabulary []string `yaml:"vocabulary"`
}

type DomainRule struct {
	Host   string `yaml:"host"`
	Folder string `yaml:"folder"`
}

type TermRule struct {
	Words  []string `yaml:"words"`
	Folder string   `yaml:"folder"`
}

// DefaultRules are compiled in so the heuristic stage always works,
// even with no rules file deployed.
func DefaultRules() Rules {
	return Rules{
		Domains: []DomainRule{
			{Host: "github.com", Folder: "/tech/code"},
			{Host: "gitlab.com", Folder: "/tech/code"},
			{Host: "bitbucket.org", Folder: "/tech/code"},
			{Host: "stackoverflow.com", Folder: "/tech/programming"},
			{Host: "youtube.com", Folder: "/media/video"},
			{Host: "vimeo.com", Folder: "/media/video"},
			{Host: "twitch.tv", Folder: "/media/video"},
			{Host: "reddit.com", Folder: "/social"},
			{Host: "twitter.com", Folder: "/social"},
			{Host: "wikipedia.org", Folder: "/reference"},
			{Host: "arxiv.org", Folder: "/reference/papers"},
		},
		Terms: []TermRule{
			{Words: []string{"python", "golang", "javascript", "typescript", "rust", "programming", "tutorial", "api", "sdk"}, Folder: "/tech/programming"},
			{Words: []string{"recipe", "cooking", "ingredients"}, Folder: "/recipes"},
			{Words: []string{"news", "breaking", "headline"}, Folder: "/news"},
		},
		Vocabulary: []string{
			"python", "golang", "javascript", "typescript", "rust", "java",
			"programming", "tutorial", "documentation", "api", "sdk",
			"docker", "kubernetes", "linux", "database", "security",
			"video", "music", "recipe", "news", "science", "blog",
		},
	}
}

// LoadRules reads a YAML rules file, overlaying it on the defaults:
// empty sections keep their default content.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}

	if len(loaded.Domains) > 0 {
		rules.Domains = loaded.Domains
	}
	if len(loaded.Terms) > 0 {
		rules.Terms = loaded.Terms
	}
	if len(loaded.Vocabulary) > 0 {
		rules.Vocabulary = loaded.Vocabulary
	}
	return rules, nil
}
