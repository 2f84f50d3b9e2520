// Package types defines the shared domain entities for the voice agent.
package types

import "fmt"

// ContentType identifies the kind of content being generated or scored.
type ContentType string

// Supported content types.
const (
	ContentTypeTweet  ContentType = "tweet"
	ContentTypeThread ContentType = "thread"
	ContentTypeReply  ContentType = "reply"
	ContentTypeQuote  ContentType = "quote"
)

// InvalidContentTypeError is returned when a string cannot be parsed into a
// ContentType at an API or CLI boundary.
type InvalidContentTypeError struct {
	Value string
}

func (e *InvalidContentTypeError) Error() string {
	return fmt.Sprintf("invalid content type %q (expected tweet, thread, reply, or quote)", e.Value)
}

// ParseContentType converts a string into a ContentType.
// Matching is exact on the lowercase names; anything else is rejected so that
// bad input surfaces at the boundary instead of inside scoring logic.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypeTweet, ContentTypeThread, ContentTypeReply, ContentTypeQuote:
		return ContentType(s), nil
	default:
		return "", &InvalidContentTypeError{Value: s}
	}
}

// IsValid reports whether the content type is one of the known variants.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeTweet, ContentTypeThread, ContentTypeReply, ContentTypeQuote:
		return true
	}
	return false
}

func (c ContentType) String() string {
	return string(c)
}
