package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/service"
)

const defaultRequestTimeout = 45 * time.Second

type WebSearcher interface {
	Search(ctx context.Context, req domain.WebSearchRequest) (*service.WebSearchResponse, error)
}

type AcademicSearcher interface {
	Search(ctx context.Context, req domain.AcademicSearchRequest) (*service.AcademicSearchResponse, error)
}

type VideoSearcher interface {
	Search(ctx context.Context, req domain.VideoSearchRequest) (*service.VideoSearchResponse, error)
}

type NewsSearcher interface {
	Search(ctx context.Context, req domain.NewsSearchRequest) (*service.NewsSearchResponse, error)
}

type ImageSearcher interface {
	Search(ctx context.Context, req domain.ImageSearchRequest) (*service.ImageSearchResponse, error)
}

type ShoppingSearcher interface {
	Search(ctx context.Context, req domain.ShoppingSearchRequest) (*service.ShoppingSearchResponse, error)
}

type Suggester interface {
	Suggest(ctx context.Context, req domain.AutocompleteRequest) (*service.AutocompleteResponse, error)
}

type SearchServices struct {
	Web          WebSearcher
	Academic     AcademicSearcher
	Video        VideoSearcher
	News         NewsSearcher
	Images       ImageSearcher
	Shopping     ShoppingSearcher
	Autocomplete Suggester
}

// SearchHandler serves the aggregation endpoints. Every failure still
// answers with the endpoint's envelope so clients can render an empty state.
type SearchHandler struct {
	services SearchServices
	timeout  time.Duration
	logger   *zap.Logger
}

func NewSearchHandler(services SearchServices, timeout time.Duration, logger *zap.Logger) *SearchHandler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{services: services, timeout: timeout, logger: logger}
}

func (h *SearchHandler) Web(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "web", h.services.Web.Search, func(msg string) any {
		return map[string]any{
			"error":           msg,
			"aiResponse":      "",
			"sources":         []any{},
			"webResults":      []any{},
			"relatedSearches": []any{},
			"totalResults":    0,
		}
	})
}

func (h *SearchHandler) Academic(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "academic", h.services.Academic.Search, func(msg string) any {
		return map[string]any{
			"error":         msg,
			"papers":        []any{},
			"totalResults":  0,
			"aiSummary":     "",
			"relatedTopics": []any{},
		}
	})
}

func (h *SearchHandler) Video(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "video", h.services.Video.Search, func(msg string) any {
		return map[string]any{"success": false, "error": msg, "videos": []any{}, "total": 0}
	})
}

func (h *SearchHandler) News(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "news", h.services.News.Search, func(msg string) any {
		return map[string]any{
			"success":      false,
			"error":        msg,
			"articles":     []any{},
			"aiSummary":    "",
			"trending":     []any{},
			"totalResults": 0,
		}
	})
}

func (h *SearchHandler) Images(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "images", h.services.Images.Search, func(msg string) any {
		return map[string]any{"success": false, "error": msg, "images": []any{}, "totalResults": 0}
	})
}

func (h *SearchHandler) Shopping(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "shopping", h.services.Shopping.Search, func(msg string) any {
		return map[string]any{"success": false, "error": msg, "products": []any{}, "totalResults": 0}
	})
}

func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "autocomplete", h.services.Autocomplete.Suggest, func(msg string) any {
		return map[string]any{"success": false, "error": msg, "suggestions": []any{}}
	})
}

// serve decodes Req, runs the service under the request timeout and maps
// errors: validation to 400, anything else to 500 with the failure envelope.
func serve[Req any, Resp any](
	h *SearchHandler,
	w http.ResponseWriter,
	r *http.Request,
	mode string,
	run func(context.Context, Req) (*Resp, error),
	failure func(msg string) any,
) {
	var req Req
	if err := decodeJSON(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := run(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			respondError(w, http.StatusBadRequest, domain.ErrEmptyQuery.Error())
		case errors.Is(err, domain.ErrQueryTooLong), errors.Is(err, domain.ErrInvalidRequest):
			respondJSON(w, http.StatusBadRequest, failure(err.Error()))
		default:
			h.logger.Error("search failed", zap.String("mode", mode), zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, failure(err.Error()))
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
