package classify

import (
	"context"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/logger"
)

// Provider is a single classification backend.
type Provider interface {
	Classify(ctx context.Context, in Input) (*domain.Classification, error)
}

// Cache stores classification results keyed by URL. Implementations
// must be best-effort: a broken cache degrades to a miss, never to a
// classification failure.
type Cache interface {
	Get(ctx context.Context, url string) (*domain.Classification, bool)
	Set(ctx context.Context, url string, c *domain.Classification)
}

// Classifier runs the provider chain: local model first when one is
// configured and preferred, then the cloud model, then static
// heuristics when no AI backend is available. A cloud failure is
// terminal: its degraded result stands rather than silently falling
// back to guesswork.
type Classifier struct {
	local     Provider
	cloud     Provider
	heuristic Provider
	cache     Cache
	log       logger.Logger
}

// Options selects which backends the chain uses. Heuristic must be
// set; Local and Cloud may be nil when not configured. Cache may be
// nil to disable caching.
type Options struct {
	Local     Provider
	Cloud     Provider
	Heuristic Provider
	Cache     Cache
}

func New(opts Options, log logger.Logger) *Classifier {
	return &Classifier{
		local:     opts.Local,
		cloud:     opts.Cloud,
		heuristic: opts.Heuristic,
		cache:     opts.Cache,
		log:       log,
	}
}

// Classify produces a normalized result for in. It never returns an
// error: every failure mode degrades to a poorer but valid result.
func (c *Classifier) Classify(ctx context.Context, in Input) *domain.Classification {
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, in.URL); ok {
			c.log.Debug("classification cache hit", logger.String("url", in.URL))
			return normalize(cached, in)
		}
	}

	result, cacheable := c.classify(ctx, in)
	result = normalize(result, in)

	// Only successful AI results are worth remembering; heuristics
	// are cheaper to recompute than to fetch, and failures may be
	// transient.
	if c.cache != nil && cacheable {
		c.cache.Set(ctx, in.URL, result)
	}
	return result
}

func (c *Classifier) classify(ctx context.Context, in Input) (*domain.Classification, bool) {
	if c.local != nil && !in.SkipLocal {
		result, err := c.local.Classify(ctx, in)
		if err == nil {
			return result, true
		}
		c.log.Warn("local classification failed",
			logger.String("url", in.URL), logger.Error(err))
	}

	if c.cloud != nil {
		result, err := c.cloud.Classify(ctx, in)
		if err == nil {
			return result, true
		}
		c.log.Error("cloud classification failed",
			logger.String("url", in.URL), logger.Error(err))
		return &domain.Classification{
			Summary:    "Classification failed: " + err.Error(),
			FolderPath: "/unsorted",
			Source:     domain.SourceCloud,
		}, false
	}

	result, _ := c.heuristic.Classify(ctx, in)
	return result, false
}

// normalize enforces the result contract: at most five deduplicated
// keywords, a non-empty summary and a non-empty folder path.
func normalize(c *domain.Classification, in Input) *domain.Classification {
	seen := make(map[string]struct{}, len(c.Keywords))
	keywords := make([]string, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == 5 {
			break
		}
	}
	c.Keywords = keywords

	if c.Summary == "" {
		c.Summary = "Bookmark: " + in.Title
	}
	if c.FolderPath == "" {
		c.FolderPath = "/unsorted"
	}
	return c
}
