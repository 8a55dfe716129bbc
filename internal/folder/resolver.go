package folder

import (
	"context"
	"errors"
	"fmt"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/logger"
	"github.com/afeldman/gmark/internal/store"
)

// Resolver materializes folder paths into folder rows, creating any
// missing ancestors along the way.
type Resolver struct {
	folders store.FolderStore
	log     logger.Logger
}

func NewResolver(folders store.FolderStore, log logger.Logger) *Resolver {
	return &Resolver{folders: folders, log: log}
}

// EnsureHierarchy walks path segment by segment for userID, creating
// each missing folder under its parent, and returns the id of the
// deepest one. It is idempotent: resolving an existing path creates
// nothing. A root or empty path resolves to nil, meaning unassigned.
//
// Two resolvers may race on the same prefix; the store reports the
// loser's insert as a conflict, and the loser simply reads the
// winner's row.
func (r *Resolver) EnsureHierarchy(ctx context.Context, userID int64, path string) (*int64, error) {
	segments := domain.SplitPath(path)
	if len(segments) == 0 {
		return nil, nil
	}

	var (
		parentID *int64
		prefix   string
	)
	for _, segment := range segments {
		prefix = domain.JoinPath(prefix, segment)

		existing, err := r.folders.GetFolderByPath(ctx, userID, prefix)
		if err == nil {
			id := existing.ID
			parentID = &id
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resolve folder %q: %w", prefix, err)
		}

		id, err := r.folders.CreateFolder(ctx, userID, segment, parentID)
		if errors.Is(err, store.ErrConflict) {
			// Lost a concurrent create; the row exists now.
			existing, err := r.folders.GetFolderByPath(ctx, userID, prefix)
			if err != nil {
				return nil, fmt.Errorf("re-resolve folder %q: %w", prefix, err)
			}
			id = existing.ID
		} else if err != nil {
			return nil, fmt.Errorf("create folder %q: %w", prefix, err)
		} else {
			r.log.Debug("created folder",
				logger.Int64("user_id", userID),
				logger.String("path", prefix))
		}

		fid := id
		parentID = &fid
	}

	return parentID, nil
}

// Tree renders the user's full hierarchy with per-folder direct
// bookmark counts.
func (r *Resolver) Tree(ctx context.Context, userID int64) ([]*domain.FolderNode, error) {
	folders, err := r.folders.ListFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	counts, err := r.folders.CountBookmarksByFolder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	return domain.BuildFolderTree(folders, counts, nil), nil
}

// Resolve looks up an existing path without creating anything. A root
// path resolves to nil.
func (r *Resolver) Resolve(ctx context.Context, userID int64, path string) (*int64, error) {
	if len(domain.SplitPath(path)) == 0 {
		return nil, nil
	}
	f, err := r.folders.GetFolderByPath(ctx, userID, path)
	if err != nil {
		return nil, err
	}
	id := f.ID
	return &id, nil
}
