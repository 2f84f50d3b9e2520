package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/jonathan/voice-agent/internal/types"
)

// ErrProfileNotFound indicates no saved voice profile exists for a handle.
type ErrProfileNotFound struct {
	Handle string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("no saved voice profile for @%s; run analyze first", e.Handle)
}

// ErrResearchNotFound indicates the research id is unknown or expired.
type ErrResearchNotFound struct {
	ID string
}

func (e *ErrResearchNotFound) Error() string {
	return fmt.Sprintf("research %s not found or expired", e.ID)
}

// ErrEntryNotFound indicates a history entry was not found.
type ErrEntryNotFound struct {
	ID string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("history entry not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		profileNotFound  *ErrProfileNotFound
		researchNotFound *ErrResearchNotFound
		entryNotFound    *ErrEntryNotFound
		validation       *ErrValidation
		invalidType      *types.InvalidContentTypeError
		userNotFound     *posts.NotFoundError
	)
	switch {
	case errors.As(err, &profileNotFound),
		errors.As(err, &researchNotFound),
		errors.As(err, &entryNotFound),
		errors.As(err, &userNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &invalidType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
