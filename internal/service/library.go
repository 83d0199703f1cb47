package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/repository"
)

// LibraryService manages a user's history, saved searches and reading list.
// Every call is scoped to userID.
type LibraryService interface {
	AddHistory(ctx context.Context, userID, query string, mode domain.SearchMode) (*domain.HistoryEntry, error)
	ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, userID, id string) error
	ClearHistory(ctx context.Context, userID string) error

	SaveSearch(ctx context.Context, saved domain.SavedSearch) (*domain.SavedSearch, error)
	ListSaved(ctx context.Context, userID string) ([]domain.SavedSearch, error)
	RenameSaved(ctx context.Context, userID, id, name string) error
	DeleteSaved(ctx context.Context, userID, id string) error
	ClearSaved(ctx context.Context, userID string) error

	AddToReadingList(ctx context.Context, userID string, paper domain.AcademicPaper) (*domain.ReadingItem, error)
	ListReading(ctx context.Context, userID string) ([]domain.ReadingItem, error)
	UpdateReading(ctx context.Context, userID, paperID string, upd domain.ReadingUpdate) (*domain.ReadingItem, error)
	RemoveFromReadingList(ctx context.Context, userID, paperID string) error
}

type libraryService struct {
	history repository.HistoryRepository
	saved   repository.SavedSearchRepository
	reading repository.ReadingListRepository
	logger  *zap.Logger
}

func NewLibraryService(
	history repository.HistoryRepository,
	saved repository.SavedSearchRepository,
	reading repository.ReadingListRepository,
	logger *zap.Logger,
) LibraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &libraryService{
		history: history,
		saved:   saved,
		reading: reading,
		logger:  logger,
	}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingUserID
	}
	return nil
}

func (s *libraryService) AddHistory(ctx context.Context, userID, query string, mode domain.SearchMode) (*domain.HistoryEntry, error) {
	if mode == "" {
		mode = domain.ModeWeb
	}
	entry := &domain.HistoryEntry{
		UserID: userID,
		Query:  strings.TrimSpace(query),
		Mode:   mode,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.history.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *libraryService) ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.history.List(ctx, userID, domain.MaxHistoryEntries)
}

func (s *libraryService) DeleteHistory(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.history.Delete(ctx, userID, id)
}

func (s *libraryService) ClearHistory(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.history.Clear(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("history cleared", zap.String("user_id", userID))
	return nil
}

func (s *libraryService) SaveSearch(ctx context.Context, saved domain.SavedSearch) (*domain.SavedSearch, error) {
	saved.Query = strings.TrimSpace(saved.Query)
	saved.Normalize()
	if err := saved.Validate(); err != nil {
		return nil, err
	}

	if err := s.saved.Create(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *libraryService) ListSaved(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.saved.List(ctx, userID)
}

func (s *libraryService) RenameSaved(ctx context.Context, userID, id, name string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidRequest
	}
	return s.saved.Rename(ctx, userID, id, name)
}

func (s *libraryService) DeleteSaved(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.saved.Delete(ctx, userID, id)
}

func (s *libraryService) ClearSaved(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.saved.Clear(ctx, userID)
}

func (s *libraryService) AddToReadingList(ctx context.Context, userID string, paper domain.AcademicPaper) (*domain.ReadingItem, error) {
	item := domain.ReadingItemFromPaper(userID, paper)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.reading.Add(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Info("paper saved",
		zap.String("user_id", userID),
		zap.String("paper_id", item.PaperID),
	)
	return &item, nil
}

func (s *libraryService) ListReading(ctx context.Context, userID string) ([]domain.ReadingItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.reading.List(ctx, userID)
}

func (s *libraryService) UpdateReading(ctx context.Context, userID, paperID string, upd domain.ReadingUpdate) (*domain.ReadingItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return s.reading.Update(ctx, userID, paperID, upd)
}

func (s *libraryService) RemoveFromReadingList(ctx context.Context, userID, paperID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.reading.Delete(ctx, userID, paperID)
}
