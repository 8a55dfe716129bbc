package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/store"
)

func (s *Store) CreateFolder(ctx context.Context, userID int64, name string, parentID *int64) (int64, error) {
	parentPath := ""
	if parentID != nil {
		var p domain.Folder
		err := s.db.GetContext(ctx, &p, `
			SELECT id, user_id, name, parent_id, full_path, created_at, modified_at
			FROM bookmark_folders WHERE id = ? AND user_id = ?`, *parentID, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("look up parent folder: %w", err)
		}
		parentPath = p.FullPath
	}

	fullPath := domain.JoinPath(parentPath, name)
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmark_folders (user_id, name, parent_id, full_path, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, parentID, fullPath, now, now)
	if err != nil {
		if isConstraintErr(err) {
			return 0, store.ErrConflict
		}
		return 0, fmt.Errorf("insert folder: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert folder: %w", err)
	}
	return id, nil
}

func (s *Store) GetFolderByPath(ctx context.Context, userID int64, path string) (*domain.Folder, error) {
	var f domain.Folder
	err := s.db.GetContext(ctx, &f, `
		SELECT id, user_id, name, parent_id, full_path, created_at, modified_at
		FROM bookmark_folders WHERE user_id = ? AND full_path = ?`,
		userID, domain.NormalizePath(path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder by path: %w", err)
	}
	return &f, nil
}

func (s *Store) ListFolders(ctx context.Context, userID int64) ([]*domain.Folder, error) {
	var rows []*domain.Folder
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, name, parent_id, full_path, created_at, modified_at
		FROM bookmark_folders WHERE user_id = ?
		ORDER BY full_path`, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return rows, nil
}

func (s *Store) CountBookmarksByFolder(ctx context.Context, userID int64) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT folder_id, COUNT(*) FROM bookmarks
		WHERE user_id = ? AND folder_id IS NOT NULL
		GROUP BY folder_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks by folder: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			folderID int64
			n        int
		)
		if err := rows.Scan(&folderID, &n); err != nil {
			return nil, fmt.Errorf("count bookmarks by folder: %w", err)
		}
		counts[folderID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count bookmarks by folder: %w", err)
	}
	return counts, nil
}

// DeleteFolder removes a folder and, through the schema's cascading
// foreign keys, its descendant folders. Bookmarks in the deleted
// subtree are detached (folder_id goes NULL), not deleted.
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmark_folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
