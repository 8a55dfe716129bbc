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

func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) (int64, error) {
	now := time.Now().UTC()
	if b.AccessTime.IsZero() {
		b.AccessTime = now
	}
	if b.ModifiedTime.IsZero() {
		b.ModifiedTime = now
	}
	if b.ChangedTime.IsZero() {
		b.ChangedTime = now
	}
	if b.Mode == "" {
		b.Mode = domain.VisibilityUser
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (user_id, folder_id, url, title, description, mode, access_time, modified_time, changed_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.FolderID, b.URL, b.Title, b.Description, b.Mode,
		b.AccessTime, b.ModifiedTime, b.ChangedTime)
	if err != nil {
		if isConstraintErr(err) {
			return 0, store.ErrConflict
		}
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}
	b.ID = id
	return id, nil
}

func (s *Store) GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := s.db.GetContext(ctx, &b, `
		SELECT id, user_id, folder_id, url, title, description, mode, access_time, modified_time, changed_time
		FROM bookmarks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}

	keywords, err := s.GetKeywords(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Keywords = keywords
	return &b, nil
}

func (s *Store) ListBookmarks(ctx context.Context, userID int64, folderID *int64) ([]*domain.Bookmark, error) {
	var (
		rows []*domain.Bookmark
		err  error
	)
	if folderID != nil {
		err = s.db.SelectContext(ctx, &rows, `
			SELECT id, user_id, folder_id, url, title, description, mode, access_time, modified_time, changed_time
			FROM bookmarks WHERE user_id = ? AND folder_id = ?
			ORDER BY modified_time DESC`, userID, *folderID)
	} else {
		err = s.db.SelectContext(ctx, &rows, `
			SELECT id, user_id, folder_id, url, title, description, mode, access_time, modified_time, changed_time
			FROM bookmarks WHERE user_id = ?
			ORDER BY modified_time DESC`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return rows, nil
}

func (s *Store) SearchBookmarks(ctx context.Context, userID int64, query string) ([]*domain.Bookmark, error) {
	like := "%" + query + "%"
	var rows []*domain.Bookmark
	err := s.db.SelectContext(ctx, &rows, `
		SELECT DISTINCT b.id, b.user_id, b.folder_id, b.url, b.title, b.description, b.mode,
			b.access_time, b.modified_time, b.changed_time
		FROM bookmarks b
		LEFT JOIN bookmark_keywords bk ON bk.bookmark_id = b.id
		LEFT JOIN keywords k ON k.id = bk.keyword_id
		WHERE b.user_id = ?
			AND (b.title LIKE ? OR b.description LIKE ? OR b.url LIKE ? OR k.keyword LIKE ?)
		ORDER BY b.modified_time DESC`,
		userID, like, like, like, like)
	if err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	return rows, nil
}

func (s *Store) UpdateBookmark(ctx context.Context, id int64, upd domain.BookmarkUpdate) error {
	if upd.Empty() {
		return nil
	}

	b, err := s.GetBookmark(ctx, id)
	if err != nil {
		return err
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.Mode != nil {
		b.Mode = *upd.Mode
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		UPDATE bookmarks SET title = ?, description = ?, mode = ?, modified_time = ?, changed_time = ?
		WHERE id = ?`,
		b.Title, b.Description, b.Mode, now, now, id)
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	return nil
}

func (s *Store) DeleteBookmark(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MoveBookmark(ctx context.Context, id int64, folderID *int64) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE bookmarks SET folder_id = ?, changed_time = ? WHERE id = ?`,
		folderID, now, id)
	if err != nil {
		if isConstraintErr(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("move bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move bookmark: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
