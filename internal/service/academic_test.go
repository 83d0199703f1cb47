package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	llmMock "github.com/kitbuilder587/searchportal/internal/llm/mock"
)

func paper(id, source, published string) domain.AcademicPaper {
	return domain.AcademicPaper{
		ID:            id,
		Title:         "Paper " + id,
		Authors:       []string{"A. One", "B. Two", "C. Three"},
		Abstract:      "Abstract of " + id,
		PublishedDate: published,
		Source:        source,
		URL:           "https://papers.example/" + id,
	}
}

func TestAcademicService_Search(t *testing.T) {
	arxiv := NewMockPaperSource(
		paper("a1", domain.PaperSourceArxiv, "2021-05-01"),
		paper("a2", domain.PaperSourceArxiv, "2024-01-10"),
	)
	pubmed := NewMockPaperSource(
		paper("p1", domain.PaperSourcePubMed, "2023 Mar"),
		paper("a1", domain.PaperSourcePubMed, "2021-05-01"),
	)
	client := llmMock.New().WithResponse("Key themes are X and Y.")

	svc := NewAcademicService(AcademicServiceDeps{
		Arxiv:       arxiv,
		PubMed:      pubmed,
		Synthesizer: NewSynthesizer(client, nil, zap.NewNop()),
		Logger:      zap.NewNop(),
	})

	resp, err := svc.Search(context.Background(), domain.AcademicSearchRequest{
		Query:    "protein folding",
		Category: "biology",
		SortBy:   domain.SortDate,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if resp.TotalResults != 3 {
		t.Fatalf("TotalResults = %d, want 3 after dedupe", resp.TotalResults)
	}
	wantOrder := []string{"a2", "p1", "a1"}
	for i, id := range wantOrder {
		if resp.Papers[i].ID != id {
			t.Errorf("Papers[%d].ID = %s, want %s", i, resp.Papers[i].ID, id)
		}
	}
	if arxiv.LastCategory != "biology" || arxiv.LastLimit() != academicPerSource {
		t.Errorf("arxiv got category %q limit %d", arxiv.LastCategory, arxiv.LastLimit())
	}
	if resp.AISummary != "Key themes are X and Y." {
		t.Errorf("AISummary = %q", resp.AISummary)
	}
	if client.LastRequest.MaxTokens != paperSummaryMaxTokens {
		t.Errorf("MaxTokens = %d", client.LastRequest.MaxTokens)
	}
	if len(resp.RelatedTopics) != 4 || resp.RelatedTopics[0] != "protein folding review" {
		t.Errorf("RelatedTopics = %v", resp.RelatedTopics)
	}
}

func TestAcademicService_Search_NoPapers(t *testing.T) {
	client := llmMock.New()
	svc := NewAcademicService(AcademicServiceDeps{
		Arxiv:       NewMockPaperSource().WithError(errors.New("arxiv 503")),
		PubMed:      NewMockPaperSource(),
		Synthesizer: NewSynthesizer(client, nil, zap.NewNop()),
	})

	resp, err := svc.Search(context.Background(), domain.AcademicSearchRequest{Query: "zzzz"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalResults != 0 || len(resp.Papers) != 0 {
		t.Errorf("papers = %+v", resp.Papers)
	}
	if resp.Papers == nil {
		t.Error("Papers must encode as [] not null")
	}
	if resp.AISummary != "" {
		t.Errorf("AISummary = %q, want empty", resp.AISummary)
	}
	if client.CallCount != 0 {
		t.Error("model called with no papers")
	}
}

func TestAcademicService_Search_SummaryFailure(t *testing.T) {
	svc := NewAcademicService(AcademicServiceDeps{
		Arxiv:       NewMockPaperSource(paper("a1", domain.PaperSourceArxiv, "2020")),
		Synthesizer: NewSynthesizer(llmMock.New().WithError(errors.New("rate limited")), nil, nil),
	})

	resp, err := svc.Search(context.Background(), domain.AcademicSearchRequest{Query: "graphs"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.AISummary != "" {
		t.Errorf("AISummary = %q, want empty on failure", resp.AISummary)
	}
	if resp.TotalResults != 1 {
		t.Errorf("TotalResults = %d", resp.TotalResults)
	}
}

func TestAcademicService_Search_Budget(t *testing.T) {
	var many []domain.AcademicPaper
	for i := 0; i < 20; i++ {
		many = append(many, paper(fmt.Sprintf("x%d", i), domain.PaperSourceArxiv, ""))
	}
	var more []domain.AcademicPaper
	for i := 0; i < 20; i++ {
		more = append(more, paper(fmt.Sprintf("y%d", i), domain.PaperSourcePubMed, ""))
	}

	svc := NewAcademicService(AcademicServiceDeps{
		Arxiv:  NewMockPaperSource(many...),
		PubMed: NewMockPaperSource(more...),
	})

	resp, err := svc.Search(context.Background(), domain.AcademicSearchRequest{Query: "graphs"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalResults != domain.AcademicResultBudget {
		t.Errorf("TotalResults = %d, want %d", resp.TotalResults, domain.AcademicResultBudget)
	}
}

func TestAcademicService_Search_Validation(t *testing.T) {
	svc := NewAcademicService(AcademicServiceDeps{})

	if _, err := svc.Search(context.Background(), domain.AcademicSearchRequest{}); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("error = %v, want ErrEmptyQuery", err)
	}
	if _, err := svc.Search(context.Background(), domain.AcademicSearchRequest{Query: "x", SortBy: "stars"}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}
