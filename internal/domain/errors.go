package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrEmptyQuery     = errors.New("Query is required")
	ErrQueryTooLong   = errors.New("query too long")
	ErrInvalidRequest = errors.New("invalid request")
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrMissingUserID   = errors.New("missing user id")
	ErrDuplicateEntry  = errors.New("entry already exists")
	ErrHistoryNotFound = errors.New("history entry not found")
	ErrSavedNotFound   = errors.New("saved search not found")
	ErrReadingNotFound = errors.New("reading list item not found")
)
