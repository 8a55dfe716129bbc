package ingest

import (
	"context"
	"fmt"

	"github.com/afeldman/gmark/internal/classify"
	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/extract"
	"github.com/afeldman/gmark/internal/fetch"
	"github.com/afeldman/gmark/internal/logger"
	"github.com/afeldman/gmark/internal/store"
)

// Request is one bookmark to ingest. Title and Description, when set,
// take precedence over anything extracted or classified. FolderPath,
// when set, overrides the classifier's suggestion.
type Request struct {
	UserID       int64
	URL          string
	Title        string
	Description  string
	FolderPath   string
	Mode         domain.Visibility
	AutoClassify bool
	// PreferLocal overrides the service default for trying the local
	// model first; nil keeps the default.
	PreferLocal *bool
}

// Result is the terminal pipeline output. SuggestedFolderPath is the
// classifier's recommendation, which may differ from where the
// bookmark was actually filed when the caller named a folder
// explicitly; it is empty when classification was skipped.
type Result struct {
	Bookmark            *domain.Bookmark `json:"bookmark"`
	SuggestedFolderPath string           `json:"suggested_folder_path,omitempty"`
}

// Fetcher is the content-fetching stage.
type Fetcher interface {
	Fetch(ctx context.Context, url string) fetch.Page
}

// Classifier is the classification stage.
type Classifier interface {
	Classify(ctx context.Context, in classify.Input) *domain.Classification
}

// Resolver materializes folder paths.
type Resolver interface {
	EnsureHierarchy(ctx context.Context, userID int64, path string) (*int64, error)
}

// Pipeline runs fetch, extract, classify, resolve and persist for one
// bookmark at a time.
type Pipeline struct {
	fetcher    Fetcher
	classifier Classifier
	resolver   Resolver
	store      store.Store
	log        logger.Logger
}

func New(fetcher Fetcher, classifier Classifier, resolver Resolver, st store.Store, log logger.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		classifier: classifier,
		resolver:   resolver,
		store:      st,
		log:        log,
	}
}

// Ingest processes req end to end and returns the stored bookmark.
// A duplicate URL surfaces as store.ErrConflict. Fetch and
// classification failures degrade the result instead of failing it;
// only persistence errors and context cancellation abort.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*Result, error) {
	page := p.fetcher.Fetch(ctx, req.URL)
	meta := extract.FromHTML(page.Body)

	title := req.Title
	if title == "" {
		title = meta.Title
	}
	description := req.Description
	if description == "" {
		description = meta.Description
	}

	folderPath := req.FolderPath
	var result *domain.Classification

	if req.AutoClassify {
		result = p.classifier.Classify(ctx, classify.Input{
			URL:       req.URL,
			Title:     title,
			Body:      page.Body,
			SkipLocal: req.PreferLocal != nil && !*req.PreferLocal,
		})
		p.log.Info("classified bookmark",
			logger.String("url", req.URL),
			logger.String("folder", result.FolderPath),
			logger.String("source", string(result.Source)))

		if description == "" {
			description = result.Summary
		}
		if folderPath == "" {
			folderPath = result.FolderPath
		}
	}

	var folderID *int64
	if folderPath != "" {
		id, err := p.resolver.EnsureHierarchy(ctx, req.UserID, folderPath)
		if err != nil {
			return nil, fmt.Errorf("resolve folder %q: %w", folderPath, err)
		}
		folderID = id
	}

	// Everything up to here is reconstructible; the insert is not.
	// Bail out before writing if the caller has gone away.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookmark := &domain.Bookmark{
		UserID:      req.UserID,
		URL:         req.URL,
		Title:       title,
		Description: description,
		FolderID:    folderID,
		Mode:        req.Mode,
	}
	if _, err := p.store.CreateBookmark(ctx, bookmark); err != nil {
		return nil, err
	}

	out := &Result{Bookmark: bookmark}
	if result != nil {
		p.attachKeywords(ctx, bookmark, result.Keywords)
		out.SuggestedFolderPath = result.FolderPath
	}

	p.log.Info("ingested bookmark",
		logger.Int64("id", bookmark.ID),
		logger.Int64("user_id", req.UserID),
		logger.String("url", req.URL))
	return out, nil
}

// attachKeywords stores ranked keywords, most relevant first: the
// first keyword gets rank 5, the fifth gets rank 1. Keyword writes are
// best effort; a failed one is logged and skipped.
func (p *Pipeline) attachKeywords(ctx context.Context, b *domain.Bookmark, keywords []string) {
	for i, kw := range keywords {
		rank := 6 - (i + 1)
		if rank < 1 {
			break
		}
		if err := p.store.AddKeyword(ctx, b.ID, kw, rank); err != nil {
			p.log.Warn("keyword write failed",
				logger.Int64("bookmark_id", b.ID),
				logger.String("keyword", kw),
				logger.Error(err))
			continue
		}
		b.Keywords = append(b.Keywords, domain.Keyword{Term: kw, Rank: rank})
	}
}
