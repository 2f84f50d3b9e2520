package types

import "time"

// Post is a single unit of short-form social content fetched from the
// post source. Text is always present (possibly empty); counts default to
// zero when the source omits them.
type Post struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	AuthorHandle string     `json:"author_handle"`
	LikeCount    int        `json:"like_count"`
	RepostCount  int        `json:"repost_count"`
	ReplyCount   int        `json:"reply_count"`
	QuoteCount   int        `json:"quote_count"`
	IsReply      bool       `json:"is_reply"`
	IsQuote      bool       `json:"is_quote"`
	ReferencedID string     `json:"referenced_id,omitempty"`
}

// Engagement returns the weighted engagement value used across analytics:
// likes + 2x reposts + replies + quotes.
func (p Post) Engagement() int {
	return p.LikeCount + p.RepostCount*2 + p.ReplyCount + p.QuoteCount
}

// AuthorInfo holds public account metadata for a handle.
type AuthorInfo struct {
	Handle         string `json:"handle"`
	DisplayName    string `json:"display_name,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostCount      int    `json:"post_count"`
}
