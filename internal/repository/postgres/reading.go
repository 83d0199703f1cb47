package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

const readingColumns = `id::text, user_id, paper_id, title, authors, abstract, url, pdf_url, source,
	published_date, journal, doi, notes, is_read, highlight_color, created_at, updated_at`

type ReadingListRepo struct {
	db *DB
}

func NewReadingListRepo(db *DB) *ReadingListRepo {
	return &ReadingListRepo{db: db}
}

func (r *ReadingListRepo) Add(ctx context.Context, item *domain.ReadingItem) error {
	authors := item.Authors
	if authors == nil {
		authors = []string{}
	}

	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO reading_list (user_id, paper_id, title, authors, abstract, url, pdf_url,
			source, published_date, journal, doi, notes, is_read, highlight_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id::text, created_at, updated_at
	`,
		item.UserID, item.PaperID, item.Title, authors, item.Abstract, item.URL, item.PDFURL,
		item.Source, item.PublishedDate, item.Journal, item.DOI, item.Notes, item.IsRead, item.HighlightColor,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("add reading item: %w", err)
	}
	return nil
}

func (r *ReadingListRepo) List(ctx context.Context, userID string) ([]domain.ReadingItem, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+readingColumns+`
		FROM reading_list
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reading items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ReadingItem, 0)
	for rows.Next() {
		item, err := scanReadingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Update applies the non-nil fields of upd and returns the stored row.
func (r *ReadingListRepo) Update(ctx context.Context, userID, paperID string, upd domain.ReadingUpdate) (*domain.ReadingItem, error) {
	row := r.db.Pool.QueryRow(ctx, `
		UPDATE reading_list SET
			notes = COALESCE($3, notes),
			is_read = COALESCE($4, is_read),
			highlight_color = COALESCE($5, highlight_color),
			updated_at = NOW()
		WHERE user_id = $1 AND paper_id = $2
		RETURNING `+readingColumns,
		userID, paperID, upd.Notes, upd.IsRead, upd.HighlightColor,
	)

	item, err := scanReadingItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReadingNotFound
	}
	return item, err
}

func (r *ReadingListRepo) Delete(ctx context.Context, userID, paperID string) error {
	result, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reading_list WHERE user_id = $1 AND paper_id = $2`, userID, paperID)
	if err != nil {
		return fmt.Errorf("delete reading item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrReadingNotFound
	}
	return nil
}

func scanReadingItem(row pgx.Row) (*domain.ReadingItem, error) {
	var it domain.ReadingItem
	err := row.Scan(
		&it.ID, &it.UserID, &it.PaperID, &it.Title, &it.Authors, &it.Abstract, &it.URL, &it.PDFURL,
		&it.Source, &it.PublishedDate, &it.Journal, &it.DOI, &it.Notes, &it.IsRead, &it.HighlightColor,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan reading item: %w", err)
	}
	return &it, nil
}
