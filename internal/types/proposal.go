package types

import "time"

// ContentProposal is one generated piece of content. Content holds a single
// text for tweets/replies/quotes and an ordered segment list for threads.
// A proposal is constructed once per generation call and never mutated.
type ContentProposal struct {
	ContentType   ContentType    `json:"content_type"`
	Content       string         `json:"content,omitempty"`
	Segments      []string       `json:"segments,omitempty"`
	SuggestedDate *time.Time     `json:"suggested_date,omitempty"`
	Rationale     string         `json:"rationale,omitempty"`
	BasedOn       []string       `json:"based_on,omitempty"`
	Engagement    map[string]any `json:"engagement_prediction,omitempty"`
}

// Texts returns the proposal content as a slice: the segment list for
// threads, otherwise a single-element slice with the content string.
func (p *ContentProposal) Texts() []string {
	if p.ContentType == ContentTypeThread && len(p.Segments) > 0 {
		return p.Segments
	}
	return []string{p.Content}
}
