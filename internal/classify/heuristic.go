package classify

import (
	"context"
	"net/url"
	"strings"

	"github.com/afeldman/gmark/internal/domain"
)

// HeuristicProvider classifies from the URL and title alone using
// static rules. It needs no network and never fails, which makes it
// the chain's floor.
type HeuristicProvider struct {
	rules Rules
}

func NewHeuristicProvider(rules Rules) *HeuristicProvider {
	return &HeuristicProvider{rules: rules}
}

func (p *HeuristicProvider) Classify(_ context.Context, in Input) (*domain.Classification, error) {
	haystack := strings.ToLower(in.URL + " " + in.Title)

	folder := p.matchDomain(in.URL)
	if folder == "" {
		folder = p.matchTerms(haystack)
	}
	if folder == "" {
		folder = "/unsorted"
	}

	var keywords []string
	for _, term := range p.rules.Vocabulary {
		if strings.Contains(haystack, strings.ToLower(term)) {
			keywords = append(keywords, term)
			if len(keywords) == 5 {
				break
			}
		}
	}

	return &domain.Classification{
		Keywords:   keywords,
		Summary:    "Bookmark: " + in.Title,
		FolderPath: folder,
		Source:     domain.SourceHeuristic,
	}, nil
}

func (p *HeuristicProvider) matchDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())

	for _, rule := range p.rules.Domains {
		if host == rule.Host || strings.HasSuffix(host, "."+rule.Host) {
			return rule.Folder
		}
	}
	return ""
}

func (p *HeuristicProvider) matchTerms(haystack string) string {
	for _, rule := range p.rules.Terms {
		for _, word := range rule.Words {
			if strings.Contains(haystack, strings.ToLower(word)) {
				return rule.Folder
			}
		}
	}
	return ""
}
