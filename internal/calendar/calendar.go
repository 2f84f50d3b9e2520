// Package calendar loads content calendars from YAML or JSON files and turns
// them into scheduling hints and suggested publish dates.
package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/voice-agent/internal/types"
)

// ParseError represents a failure loading or parsing a calendar file.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse calendar %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse calendar %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// rawEvent tolerates both "date" and "datetime" keys and missing fields.
type rawEvent struct {
	Date               string   `json:"date" yaml:"date"`
	Datetime           string   `json:"datetime" yaml:"datetime"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	Tags               []string `json:"tags" yaml:"tags"`
	ContentSuggestions []string `json:"content_suggestions" yaml:"content_suggestions"`
}

type calendarFile struct {
	Events []rawEvent `json:"events" yaml:"events"`
}

// Processor holds loaded calendar events sorted by date.
type Processor struct {
	events []types.CalendarEvent
	now    func() time.Time
}

// NewProcessor creates an empty processor. Load populates it.
func NewProcessor() *Processor {
	return &Processor{now: time.Now}
}

// Load reads calendar events from a YAML or JSON file. A missing file yields
// an empty calendar rather than an error.
func (p *Processor) Load(path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p.events = nil
		return nil
	}
	if err != nil {
		return &ParseError{Path: path, Message: "failed to read file", Cause: err}
	}

	raw, err := decode(path, content)
	if err != nil {
		return err
	}

	var events []types.CalendarEvent
	for _, entry := range raw {
		dateStr := entry.Date
		if dateStr == "" {
			dateStr = entry.Datetime
		}
		date, ok := parseDate(dateStr)
		if !ok {
			continue
		}
		events = append(events, types.CalendarEvent{
			Date:               date,
			Title:              entry.Title,
			Description:        entry.Description,
			Tags:               entry.Tags,
			ContentSuggestions: entry.ContentSuggestions,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	p.events = events
	return nil
}

// decode picks a parser by extension, and for unknown extensions tries JSON
// first and falls back to YAML.
func decode(path string, content []byte) ([]rawEvent, error) {
	unmarshal := func(fn func([]byte, any) error) ([]rawEvent, error) {
		var list []rawEvent
		if err := fn(content, &list); err == nil {
			return list, nil
		}
		var file calendarFile
		if err := fn(content, &file); err != nil {
			return nil, err
		}
		return file.Events, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		events, err := unmarshal(yaml.Unmarshal)
		if err != nil {
			return nil, &ParseError{Path: path, Message: "invalid YAML", Cause: err}
		}
		return events, nil
	case ".json":
		events, err := unmarshal(json.Unmarshal)
		if err != nil {
			return nil, &ParseError{Path: path, Message: "invalid JSON", Cause: err}
		}
		return events, nil
	default:
		if events, err := unmarshal(json.Unmarshal); err == nil {
			return events, nil
		}
		events, err := unmarshal(yaml.Unmarshal)
		if err != nil {
			return nil, &ParseError{Path: path, Message: "not valid JSON or YAML", Cause: err}
		}
		return events, nil
	}
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Events returns all loaded events, sorted by date.
func (p *Processor) Events() []types.CalendarEvent {
	return p.events
}

// UpcomingEvents returns events between now and daysAhead days out.
func (p *Processor) UpcomingEvents(daysAhead int) []types.CalendarEvent {
	now := p.now()
	cutoff := now.AddDate(0, 0, daysAhead)

	var upcoming []types.CalendarEvent
	for _, event := range p.events {
		if !event.Date.Before(now) && !event.Date.After(cutoff) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming
}

// EventForDate returns the event on the same calendar day as target, if any.
func (p *Processor) EventForDate(target time.Time) (types.CalendarEvent, bool) {
	ty, tm, td := target.Date()
	for _, event := range p.events {
		y, m, d := event.Date.Date()
		if y == ty && m == tm && d == td {
			return event, true
		}
	}
	return types.CalendarEvent{}, false
}

// ScheduleHints formats upcoming events as prompt-ready scheduling hints.
func (p *Processor) ScheduleHints() string {
	const daysAhead = 7
	upcoming := p.UpcomingEvents(daysAhead)
	if len(upcoming) == 0 {
		return "No calendar events found for scheduling."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPCOMING CALENDAR EVENTS (next %d days):\n", daysAhead)
	for _, event := range upcoming {
		title := event.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&sb, "- %s: %s", event.Date.Format("2006-01-02 15:04"), title)
		if event.Description != "" {
			desc := event.Description
			if runes := []rune(desc); len(runes) > 50 {
				desc = string(runes[:50])
			}
			fmt.Fprintf(&sb, " - %s", desc)
		}
		if len(event.Tags) > 0 {
			fmt.Fprintf(&sb, " [Tags: %s]", strings.Join(event.Tags, ", "))
		}
		if len(event.ContentSuggestions) > 0 {
			fmt.Fprintf(&sb, " [Suggested topics: %s]", strings.Join(event.ContentSuggestions, ", "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// SuggestDates proposes count publish dates, preferring upcoming event dates
// and padding the rest at two-day intervals.
func (p *Processor) SuggestDates(count int) []time.Time {
	if count < 1 {
		return nil
	}

	upcoming := p.UpcomingEvents(30)
	suggestions := make([]time.Time, 0, count)
	for _, event := range upcoming {
		if len(suggestions) == count {
			break
		}
		suggestions = append(suggestions, event.Date)
	}

	last := p.now()
	if len(suggestions) > 0 {
		last = suggestions[len(suggestions)-1]
	}
	for i := len(suggestions); i < count; i++ {
		suggestions = append(suggestions, last.AddDate(0, 0, (i+1)*2))
	}
	return suggestions
}
