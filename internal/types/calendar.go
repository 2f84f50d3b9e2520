package types

import "time"

// CalendarEvent is a scheduling hint loaded from a calendar file.
type CalendarEvent struct {
	Date               time.Time `json:"date" yaml:"date"`
	Title              string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description        string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tags               []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	ContentSuggestions []string  `json:"content_suggestions,omitempty" yaml:"content_suggestions,omitempty"`
}
