package domain

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const MaxHistoryEntries = 100

var HighlightColors = []interface{}{"yellow", "green", "blue", "purple", "red"}

type HistoryEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Query     string     `json:"query"`
	Mode      SearchMode `json:"mode"`
	CreatedAt time.Time  `json:"timestamp"`
}

func (h *HistoryEntry) Validate() error {
	if strings.TrimSpace(h.UserID) == "" {
		return ErrMissingUserID
	}
	if err := validateQuery(h.Query); err != nil {
		return err
	}
	return wrapValidation(validation.ValidateStruct(h,
		validation.Field(&h.Mode, validation.In(ModeWeb, ModeAI)),
	))
}

type SavedSearch struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Name      string     `json:"name"`
	Query     string     `json:"query"`
	Mode      SearchMode `json:"mode"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (s *SavedSearch) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrMissingUserID
	}
	if err := validateQuery(s.Query); err != nil {
		return err
	}
	return wrapValidation(validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Length(0, 200)),
		validation.Field(&s.Mode, validation.In(ModeWeb, ModeAI)),
	))
}

// Normalize defaults an empty name to the query.
func (s *SavedSearch) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = s.Query
	}
	if s.Mode == "" {
		s.Mode = ModeWeb
	}
}

// ReadingItem is a paper snapshot saved by a user. PaperID is unique per user.
type ReadingItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	PaperID        string    `json:"paperId"`
	Title          string    `json:"title"`
	Authors        []string  `json:"authors"`
	Abstract       string    `json:"abstract,omitempty"`
	URL            string    `json:"url"`
	PDFURL         string    `json:"pdfUrl,omitempty"`
	Source         string    `json:"source"`
	PublishedDate  string    `json:"publishedDate,omitempty"`
	Journal        string    `json:"journal,omitempty"`
	DOI            string    `json:"doi,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	IsRead         bool      `json:"isRead"`
	HighlightColor string    `json:"highlightColor,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r *ReadingItem) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUserID
	}
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	return wrapValidation(validation.ValidateStruct(r,
		validation.Field(&r.PaperID, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 1000)),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.Source, validation.In(PaperSourceArxiv, PaperSourcePubMed)),
		validation.Field(&r.HighlightColor, validation.In(HighlightColors...)),
	))
}

// ReadingItemFromPaper snapshots a paper for the reading list.
func ReadingItemFromPaper(userID string, p AcademicPaper) ReadingItem {
	return ReadingItem{
		UserID:        userID,
		PaperID:       p.ID,
		Title:         p.Title,
		Authors:       p.Authors,
		Abstract:      p.Abstract,
		URL:           p.URL,
		PDFURL:        p.PDFURL,
		Source:        p.Source,
		PublishedDate: p.PublishedDate,
		Journal:       p.Journal,
		DOI:           p.DOI,
	}
}

// ReadingUpdate carries the mutable reading-list fields. Nil leaves a field as is.
type ReadingUpdate struct {
	Notes          *string `json:"notes,omitempty"`
	IsRead         *bool   `json:"isRead,omitempty"`
	HighlightColor *string `json:"highlightColor,omitempty"`
}

func (u *ReadingUpdate) Validate() error {
	if u.Notes == nil && u.IsRead == nil && u.HighlightColor == nil {
		return ErrInvalidRequest
	}
	if u.HighlightColor != nil && *u.HighlightColor != "" {
		return wrapValidation(validation.Validate(*u.HighlightColor, validation.In(HighlightColors...)))
	}
	return nil
}
