package store

import (
	"context"
	"errors"

	"github.com/afeldman/gmark/internal/domain"
)

// ErrNotFound is returned when a referenced bookmark or folder does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint,
// e.g. a duplicate URL for an owner or a duplicate folder path.
var ErrConflict = errors.New("already exists")

// BookmarkStore persists bookmarks.
type BookmarkStore interface {
	CreateBookmark(ctx context.Context, b *domain.Bookmark) (int64, error)
	GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, userID int64, folderID *int64) ([]*domain.Bookmark, error)
	SearchBookmarks(ctx context.Context, userID int64, query string) ([]*domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, id int64, upd domain.BookmarkUpdate) error
	DeleteBookmark(ctx context.Context, id int64) error
	MoveBookmark(ctx context.Context, id int64, folderID *int64) error
}

// FolderStore persists the materialized-path folder tree. CreateFolder
// derives the full path from the parent's, so callers only name the new
// segment.
type FolderStore interface {
	CreateFolder(ctx context.Context, userID int64, name string, parentID *int64) (int64, error)
	GetFolderByPath(ctx context.Context, userID int64, path string) (*domain.Folder, error)
	ListFolders(ctx context.Context, userID int64) ([]*domain.Folder, error)
	CountBookmarksByFolder(ctx context.Context, userID int64) (map[int64]int, error)
	DeleteFolder(ctx context.Context, id int64) error
}

// KeywordStore persists ranked keyword associations. AddKeyword silently
// ignores a duplicate (bookmark, keyword) pair.
type KeywordStore interface {
	AddKeyword(ctx context.Context, bookmarkID int64, keyword string, rank int) error
	GetKeywords(ctx context.Context, bookmarkID int64) ([]domain.Keyword, error)
}

// Store is the full persistence boundary the pipeline depends on.
type Store interface {
	BookmarkStore
	FolderStore
	KeywordStore
	Close() error
}
