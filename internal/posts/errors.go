package posts

import "fmt"

// APIError represents a failure talking to the posts API.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("posts API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("posts API error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("posts API error: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates the requested user does not exist or is not public.
type NotFoundError struct {
	Handle string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user @%s not found; the account may not exist, or may be private, suspended, or deleted", e.Handle)
}
