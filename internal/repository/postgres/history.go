package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Add drops an older row with the same query before inserting, so a repeated
// search moves to the top instead of duplicating.
func (r *HistoryRepo) Add(ctx context.Context, entry *domain.HistoryEntry) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM search_history WHERE user_id = $1 AND query = $2`,
			entry.UserID, entry.Query,
		); err != nil {
			return fmt.Errorf("replace history entry: %w", err)
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO search_history (user_id, query, mode)
			VALUES ($1, $2, $3)
			RETURNING id::text, created_at
		`, entry.UserID, entry.Query, string(entry.Mode)).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("add history entry: %w", err)
		}
		return nil
	})
}

func (r *HistoryRepo) List(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > domain.MaxHistoryEntries {
		limit = domain.MaxHistoryEntries
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, user_id, query, mode, created_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var e domain.HistoryEntry
		var mode string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Query, &mode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Mode = domain.SearchMode(mode)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *HistoryRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Pool.Exec(ctx,
		`DELETE FROM search_history WHERE id::text = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrHistoryNotFound
	}
	return nil
}

func (r *HistoryRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM search_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
