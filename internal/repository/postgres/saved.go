package postgres

import (
	"context"
	"fmt"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

type SavedSearchRepo struct {
	db *DB
}

func NewSavedSearchRepo(db *DB) *SavedSearchRepo {
	return &SavedSearchRepo{db: db}
}

func (r *SavedSearchRepo) Create(ctx context.Context, saved *domain.SavedSearch) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO saved_searches (user_id, name, query, mode)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`, saved.UserID, saved.Name, saved.Query, string(saved.Mode)).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return fmt.Errorf("create saved search: %w", err)
	}
	return nil
}

func (r *SavedSearchRepo) List(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, user_id, name, query, mode, created_at
		FROM saved_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	saved := make([]domain.SavedSearch, 0)
	for rows.Next() {
		var s domain.SavedSearch
		var mode string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Query, &mode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		s.Mode = domain.SearchMode(mode)
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

func (r *SavedSearchRepo) Rename(ctx context.Context, userID, id, name string) error {
	result, err := r.db.Pool.Exec(ctx,
		`UPDATE saved_searches SET name = $1 WHERE id::text = $2 AND user_id = $3`, name, id, userID)
	if err != nil {
		return fmt.Errorf("rename saved search: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSavedNotFound
	}
	return nil
}

func (r *SavedSearchRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Pool.Exec(ctx,
		`DELETE FROM saved_searches WHERE id::text = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSavedNotFound
	}
	return nil
}

func (r *SavedSearchRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM saved_searches WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear saved searches: %w", err)
	}
	return nil
}
