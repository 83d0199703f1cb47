package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/service"
)

// UserIDHeader carries the user id set by the authenticating proxy.
const UserIDHeader = "X-User-ID"

type LibraryHandler struct {
	library service.LibraryService
	logger  *zap.Logger
}

func NewLibraryHandler(library service.LibraryService, logger *zap.Logger) *LibraryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryHandler{library: library, logger: logger}
}

func userID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(UserIDHeader))
	return id, id != ""
}

// handleError maps library errors onto HTTP statuses.
func (h *LibraryHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingUserID), errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrHistoryNotFound),
		errors.Is(err, domain.ErrSavedNotFound),
		errors.Is(err, domain.ErrReadingNotFound),
		errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrQueryTooLong),
		errors.Is(err, domain.ErrInvalidURL),
		errors.Is(err, domain.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("library request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// orEmpty keeps empty lists as [] in JSON.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// withUser rejects requests without a user id before running fn.
func (h *LibraryHandler) withUser(fn func(w http.ResponseWriter, r *http.Request, uid string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		fn(w, r, uid)
	}
}

type historyRequest struct {
	Query string            `json:"query"`
	Mode  domain.SearchMode `json:"mode"`
}

// ListHistory - GET /api/history
func (h *LibraryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		entries, err := h.library.ListHistory(r.Context(), uid)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, orEmpty(entries))
	})(w, r)
}

// AddHistory - POST /api/history
func (h *LibraryHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		var req historyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		entry, err := h.library.AddHistory(r.Context(), uid, req.Query, req.Mode)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, entry)
	})(w, r)
}

// DeleteHistory - DELETE /api/history/{id}
func (h *LibraryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		if err := h.library.DeleteHistory(r.Context(), uid, r.PathValue("id")); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}

// ClearHistory - DELETE /api/history
func (h *LibraryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		if err := h.library.ClearHistory(r.Context(), uid); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}

type savedRequest struct {
	Name  string            `json:"name"`
	Query string            `json:"query"`
	Mode  domain.SearchMode `json:"mode"`
}

func (h *LibraryHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		saved, err := h.library.ListSaved(r.Context(), uid)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, orEmpty(saved))
	})(w, r)
}

func (h *LibraryHandler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		var req savedRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		saved, err := h.library.SaveSearch(r.Context(), domain.SavedSearch{
			UserID: uid,
			Name:   req.Name,
			Query:  req.Query,
			Mode:   req.Mode,
		})
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, saved)
	})(w, r)
}

func (h *LibraryHandler) RenameSaved(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		var req struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.library.RenameSaved(r.Context(), uid, r.PathValue("id"), req.Name); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}

func (h *LibraryHandler) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		if err := h.library.DeleteSaved(r.Context(), uid, r.PathValue("id")); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}

func (h *LibraryHandler) ClearSaved(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		if err := h.library.ClearSaved(r.Context(), uid); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}

func (h *LibraryHandler) ListReading(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		items, err := h.library.ListReading(r.Context(), uid)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, orEmpty(items))
	})(w, r)
}

// AddReading - POST /api/reading-list, body is an academic paper.
func (h *LibraryHandler) AddReading(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		var paper domain.AcademicPaper
		if err := decodeJSON(w, r, &paper); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		item, err := h.library.AddToReadingList(r.Context(), uid, paper)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, item)
	})(w, r)
}

func (h *LibraryHandler) UpdateReading(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		var upd domain.ReadingUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		item, err := h.library.UpdateReading(r.Context(), uid, r.PathValue("paperId"), upd)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	})(w, r)
}

func (h *LibraryHandler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	h.withUser(func(w http.ResponseWriter, r *http.Request, uid string) {
		if err := h.library.RemoveFromReadingList(r.Context(), uid, r.PathValue("paperId")); err != nil {
			h.handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}
