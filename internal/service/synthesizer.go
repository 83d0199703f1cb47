package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/llm"
	"github.com/kitbuilder587/searchportal/internal/metrics"
)

const (
	webSystemPrompt = "You are a search assistant. Provide comprehensive answers based on search results. " +
		"Cite sources [1], [2], etc. Be factual and concise."
	newsSystemPrompt = "You are a news summarizer. Provide a brief, objective 2-3 sentence summary of the main news themes."

	contextResults = 8
)

// Synthesizer wraps the chat client with metrics and the extractive
// fallback used when no model answer is available.
type Synthesizer struct {
	client  llm.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSynthesizer(client llm.Client, m *metrics.Metrics, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{client: client, metrics: m, logger: logger}
}

// Complete calls the model once. A nil client reports llm.ErrNotConfigured.
func (s *Synthesizer) Complete(ctx context.Context, req llm.Request) (string, error) {
	if s == nil || s.client == nil {
		return "", llm.ErrNotConfigured
	}

	start := time.Now()
	text, err := s.client.Complete(ctx, req)

	status := "success"
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return "", err
	case err != nil:
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.RecordLLMRequest(s.client.Provider(), status, time.Since(start))
	}

	if err != nil {
		s.logger.Warn("completion failed", zap.String("provider", s.client.Provider()), zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// AnswerInput is everything the web answer may draw on.
type AnswerInput struct {
	Query    string
	Abstract string
	Extract  string
	Entities []domain.WikidataEntity
	Results  []domain.SearchResult
}

// Answer asks the model for a cited answer and falls back to Fallback on
// any failure, including a missing key.
func (s *Synthesizer) Answer(ctx context.Context, in AnswerInput) string {
	text, err := s.Complete(ctx, llm.Request{
		System: webSystemPrompt,
		Prompt: fmt.Sprintf("Query: \"%s\"\n\n%s\n\nProvide a helpful answer with citations.", in.Query, answerContext(in)),
	})
	if err != nil || text == "" {
		return Fallback(in)
	}
	return text
}

// Fallback prefers the DuckDuckGo abstract, then the Wikipedia extract,
// then a sentence with the result count.
func Fallback(in AnswerInput) string {
	switch {
	case in.Abstract != "":
		return in.Abstract
	case in.Extract != "":
		return in.Extract
	case len(in.Results) > 0:
		return fmt.Sprintf("Found %d results for \"%s\".", len(in.Results), in.Query)
	default:
		return fmt.Sprintf("No results for \"%s\".", in.Query)
	}
}

func answerContext(in AnswerInput) string {
	var b strings.Builder

	if in.Abstract != "" {
		fmt.Fprintf(&b, "Summary: %s\n\n", in.Abstract)
	}
	if in.Extract != "" {
		fmt.Fprintf(&b, "Wikipedia: %s\n\n", in.Extract)
	}
	if len(in.Entities) > 0 {
		parts := make([]string, 0, len(in.Entities))
		for _, e := range in.Entities {
			parts = append(parts, e.Label+": "+e.Description)
		}
		fmt.Fprintf(&b, "Wikidata: %s\n\n", strings.Join(parts, "; "))
	}

	b.WriteString("Sources:\n")
	b.WriteString(numberedResults(in.Results, contextResults))
	return b.String()
}

func numberedResults(results []domain.SearchResult, n int) string {
	lines := make([]string, 0, n)
	for i, r := range results {
		if i == n {
			break
		}
		lines = append(lines, fmt.Sprintf("[%d] %s: %s", i+1, r.Title, r.Description))
	}
	return strings.Join(lines, "\n")
}

func academicWebPrompt(query string, results []domain.SearchResult) string {
	lines := make([]string, 0, 10)
	for i, r := range results {
		if i == 10 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", r.Title, r.Description))
	}
	return fmt.Sprintf("You are a research assistant. Based on these academic papers and sources about \"%s\", "+
		"provide a helpful summary of the research landscape, key findings, and notable papers. "+
		"Be concise and cite specific papers when relevant.\n\nSources:\n%s", query, strings.Join(lines, "\n"))
}

func paperSummaryPrompt(query string, papers []domain.AcademicPaper) string {
	lines := make([]string, 0, contextResults)
	for i, p := range papers {
		if i == contextResults {
			break
		}
		authors := strings.Join(firstStrings(p.Authors, 2), ", ")
		if len(p.Authors) > 2 {
			authors += " et al."
		}
		lines = append(lines, fmt.Sprintf("- \"%s\" by %s: %s...", p.Title, authors, domain.Truncate(p.Abstract, 150)))
	}
	return fmt.Sprintf("You are a research assistant. Based on these academic papers about \"%s\", "+
		"provide a brief 2-3 sentence summary of the current research landscape and key themes. "+
		"Be specific and cite paper titles when relevant.\n\nPapers:\n%s", query, strings.Join(lines, "\n"))
}

func newsPrompt(articles []domain.NewsArticle) string {
	lines := make([]string, 0, 5)
	for i, a := range articles {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", a.Title, a.Description))
	}
	return "Summarize these news headlines:\n" + strings.Join(lines, "\n")
}

func firstStrings(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
