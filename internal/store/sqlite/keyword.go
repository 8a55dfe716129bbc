package sqlite

import (
	"context"
	"fmt"

	"github.com/afeldman/gmark/internal/domain"
)

func (s *Store) AddKeyword(ctx context.Context, bookmarkID int64, keyword string, rank int) error {
	var keywordID int64
	err := s.db.GetContext(ctx, &keywordID,
		`SELECT id FROM keywords WHERE keyword = ?`, keyword)
	if err != nil {
		// OR IGNORE tolerates losing a race to another writer; the
		// follow-up select picks up whichever row won.
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO keywords (keyword) VALUES (?)`, keyword); err != nil {
			return fmt.Errorf("insert keyword: %w", err)
		}
		if err := s.db.GetContext(ctx, &keywordID,
			`SELECT id FROM keywords WHERE keyword = ?`, keyword); err != nil {
			return fmt.Errorf("look up keyword: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO bookmark_keywords (bookmark_id, keyword_id, ranking)
		VALUES (?, ?, ?)`, bookmarkID, keywordID, rank)
	if err != nil {
		return fmt.Errorf("attach keyword: %w", err)
	}
	return nil
}

func (s *Store) GetKeywords(ctx context.Context, bookmarkID int64) ([]domain.Keyword, error) {
	var keywords []domain.Keyword
	err := s.db.SelectContext(ctx, &keywords, `
		SELECT k.keyword, bk.ranking
		FROM bookmark_keywords bk
		JOIN keywords k ON k.id = bk.keyword_id
		WHERE bk.bookmark_id = ?
		ORDER BY bk.ranking DESC, k.keyword`, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("get keywords: %w", err)
	}
	return keywords, nil
}
