package service

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

// call bookkeeping shared by the adapter mocks below
type calls struct {
	mu     sync.Mutex
	count  int
	limits []int
	delay  time.Duration
	err    error
}

func (c *calls) hit(ctx context.Context, limit int) error {
	c.mu.Lock()
	c.count++
	c.limits = append(c.limits, limit)
	delay, err := c.delay, c.err
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

func (c *calls) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *calls) LastLimit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.limits) == 0 {
		return 0
	}
	return c.limits[len(c.limits)-1]
}

type MockResultSource struct {
	calls
	Results []domain.SearchResult
}

func NewMockResultSource(results ...domain.SearchResult) *MockResultSource {
	return &MockResultSource{Results: results}
}

func (m *MockResultSource) WithError(err error) *MockResultSource {
	m.err = err
	return m
}

func (m *MockResultSource) WithDelay(d time.Duration) *MockResultSource {
	m.delay = d
	return m
}

func (m *MockResultSource) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if err := m.hit(ctx, limit); err != nil {
		return nil, err
	}
	return m.Results, nil
}

type MockInstantAnswerer struct {
	calls
	Answer domain.InstantAnswer
}

func NewMockInstantAnswerer(abstract string, results ...domain.SearchResult) *MockInstantAnswerer {
	return &MockInstantAnswerer{Answer: domain.InstantAnswer{Abstract: abstract, Results: results}}
}

func (m *MockInstantAnswerer) WithError(err error) *MockInstantAnswerer {
	m.err = err
	return m
}

func (m *MockInstantAnswerer) InstantAnswer(ctx context.Context, query string) (*domain.InstantAnswer, error) {
	if err := m.hit(ctx, 0); err != nil {
		return nil, err
	}
	answer := m.Answer
	return &answer, nil
}

type MockEncyclopedia struct {
	MockResultSource
	Panel    *domain.KnowledgePanel
	panelErr error
}

func NewMockEncyclopedia(results ...domain.SearchResult) *MockEncyclopedia {
	return &MockEncyclopedia{MockResultSource: MockResultSource{Results: results}}
}

func (m *MockEncyclopedia) WithPanel(p *domain.KnowledgePanel) *MockEncyclopedia {
	m.Panel = p
	return m
}

func (m *MockEncyclopedia) WithPanelError(err error) *MockEncyclopedia {
	m.panelErr = err
	return m
}

func (m *MockEncyclopedia) Summary(ctx context.Context, query string) (*domain.KnowledgePanel, error) {
	if m.panelErr != nil {
		return nil, m.panelErr
	}
	return m.Panel, nil
}

type MockEntityFinder struct {
	calls
	Items []domain.WikidataEntity
}

func (m *MockEntityFinder) Entities(ctx context.Context, query string, limit int) ([]domain.WikidataEntity, error) {
	if err := m.hit(ctx, limit); err != nil {
		return nil, err
	}
	return m.Items, nil
}

type MockPaperSource struct {
	calls
	Items        []domain.AcademicPaper
	LastCategory string
}

func NewMockPaperSource(papers ...domain.AcademicPaper) *MockPaperSource {
	return &MockPaperSource{Items: papers}
}

func (m *MockPaperSource) WithError(err error) *MockPaperSource {
	m.err = err
	return m
}

func (m *MockPaperSource) Papers(ctx context.Context, query, category string, limit int) ([]domain.AcademicPaper, error) {
	m.mu.Lock()
	m.LastCategory = category
	m.mu.Unlock()
	if err := m.hit(ctx, limit); err != nil {
		return nil, err
	}
	return m.Items, nil
}

type MockVideoSource struct {
	calls
	Items []domain.VideoResult
}

func NewMockVideoSource(videos ...domain.VideoResult) *MockVideoSource {
	return &MockVideoSource{Items: videos}
}

func (m *MockVideoSource) WithError(err error) *MockVideoSource {
	m.err = err
	return m
}

func (m *MockVideoSource) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	if err := m.hit(ctx, limit); err != nil {
		return nil, err
	}
	if len(m.Items) > limit {
		return m.Items[:limit], nil
	}
	return m.Items, nil
}

type MockImageSource struct {
	calls
	Items []domain.ImageResult
}

func NewMockImageSource(images ...domain.ImageResult) *MockImageSource {
	return &MockImageSource{Items: images}
}

func (m *MockImageSource) WithError(err error) *MockImageSource {
	m.err = err
	return m
}

func (m *MockImageSource) Images(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	if err := m.hit(ctx, limit); err != nil {
		return nil, err
	}
	return m.Items, nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func result(title, url string) domain.SearchResult {
	return domain.SearchResult{Title: title, URL: url, Description: title + " description"}
}
