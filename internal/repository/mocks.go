package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

type MockHistoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.HistoryEntry // key: user id
	now     func() time.Time
	err     error
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{
		entries: make(map[string][]domain.HistoryEntry),
		now:     time.Now,
	}
}

// WithError makes every call fail with err.
func (m *MockHistoryRepository) WithError(err error) *MockHistoryRepository {
	m.err = err
	return m
}

func (m *MockHistoryRepository) WithClock(now func() time.Time) *MockHistoryRepository {
	m.now = now
	return m
}

func (m *MockHistoryRepository) Add(ctx context.Context, entry *domain.HistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[entry.UserID][:0]
	for _, e := range m.entries[entry.UserID] {
		if e.Query != entry.Query {
			kept = append(kept, e)
		}
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = m.now()
	m.entries[entry.UserID] = append(kept, *entry)
	return nil
}

func (m *MockHistoryRepository) List(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.entries[userID]
	out := make([]domain.HistoryEntry, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockHistoryRepository) Delete(ctx context.Context, userID, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[userID]
	for i, e := range list {
		if e.ID == id {
			m.entries[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrHistoryNotFound
}

func (m *MockHistoryRepository) Clear(ctx context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, userID)
	return nil
}

type MockSavedSearchRepository struct {
	mu    sync.RWMutex
	saved map[string]*domain.SavedSearch // key: id
	now   func() time.Time
	seq   int64
}

func NewMockSavedSearchRepository() *MockSavedSearchRepository {
	return &MockSavedSearchRepository{
		saved: make(map[string]*domain.SavedSearch),
		now:   time.Now,
	}
}

func (m *MockSavedSearchRepository) Create(ctx context.Context, saved *domain.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	saved.ID = uuid.NewString()
	// sequence keeps List ordering stable when the clock does not move
	saved.CreatedAt = m.now().Add(time.Duration(m.seq))
	cp := *saved
	m.saved[saved.ID] = &cp
	return nil
}

func (m *MockSavedSearchRepository) List(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.SavedSearch, 0)
	for _, s := range m.saved {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockSavedSearchRepository) Rename(ctx context.Context, userID, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.saved[id]
	if !ok || s.UserID != userID {
		return domain.ErrSavedNotFound
	}
	s.Name = name
	return nil
}

func (m *MockSavedSearchRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.saved[id]
	if !ok || s.UserID != userID {
		return domain.ErrSavedNotFound
	}
	delete(m.saved, id)
	return nil
}

func (m *MockSavedSearchRepository) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.saved {
		if s.UserID == userID {
			delete(m.saved, id)
		}
	}
	return nil
}

type MockReadingListRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.ReadingItem // key: user id + "/" + paper id
	order []string
	now   func() time.Time
}

func NewMockReadingListRepository() *MockReadingListRepository {
	return &MockReadingListRepository{
		items: make(map[string]*domain.ReadingItem),
		now:   time.Now,
	}
}

func readingKey(userID, paperID string) string {
	return userID + "/" + paperID
}

func (m *MockReadingListRepository) Add(ctx context.Context, item *domain.ReadingItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := readingKey(item.UserID, item.PaperID)
	if _, exists := m.items[key]; exists {
		return domain.ErrDuplicateEntry
	}

	item.ID = uuid.NewString()
	item.CreatedAt = m.now()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	m.items[key] = &cp
	m.order = append(m.order, key)
	return nil
}

func (m *MockReadingListRepository) List(ctx context.Context, userID string) ([]domain.ReadingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.ReadingItem, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		if it, ok := m.items[m.order[i]]; ok && it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *MockReadingListRepository) Update(ctx context.Context, userID, paperID string, upd domain.ReadingUpdate) (*domain.ReadingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[readingKey(userID, paperID)]
	if !ok {
		return nil, domain.ErrReadingNotFound
	}
	if upd.Notes != nil {
		it.Notes = *upd.Notes
	}
	if upd.IsRead != nil {
		it.IsRead = *upd.IsRead
	}
	if upd.HighlightColor != nil {
		it.HighlightColor = *upd.HighlightColor
	}
	it.UpdatedAt = m.now()
	cp := *it
	return &cp, nil
}

func (m *MockReadingListRepository) Delete(ctx context.Context, userID, paperID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := readingKey(userID, paperID)
	if _, ok := m.items[key]; !ok {
		return domain.ErrReadingNotFound
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
