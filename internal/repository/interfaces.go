package repository

import (
	"context"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

// HistoryRepository stores per-user search history. Adding a query that is
// already present replaces the older row.
type HistoryRepository interface {
	Add(ctx context.Context, entry *domain.HistoryEntry) error
	List(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
}

type SavedSearchRepository interface {
	Create(ctx context.Context, saved *domain.SavedSearch) error
	List(ctx context.Context, userID string) ([]domain.SavedSearch, error)
	Rename(ctx context.Context, userID, id, name string) error
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
}

// ReadingListRepository stores paper snapshots, unique per (user, paper id).
type ReadingListRepository interface {
	Add(ctx context.Context, item *domain.ReadingItem) error
	List(ctx context.Context, userID string) ([]domain.ReadingItem, error)
	Update(ctx context.Context, userID, paperID string, upd domain.ReadingUpdate) (*domain.ReadingItem, error)
	Delete(ctx context.Context, userID, paperID string) error
}
