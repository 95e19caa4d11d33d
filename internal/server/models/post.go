package models

import "time"

// MaxPostLength is the upper bound on post body size, in bytes.
const MaxPostLength = 500

// Post is a short text message authored by a user. Immutable once created.
type Post struct {
	ID       int64
	UserID   int64
	Text     string
	PostDate time.Time
}

// PostPhoto is a photo attached to a post, as rendered in the feed.
type PostPhoto struct {
	URL     string `json:"photo_url"`
	Caption string `json:"photo_caption"`
}

// FeedPost is a feed entry: a post joined with its author and attachments.
type FeedPost struct {
	PostID       int64       `json:"post_id"`
	Text         string      `json:"post_text"`
	PostDate     time.Time   `json:"post_date"`
	Username     string      `json:"username"`
	ProfilePhoto string      `json:"profile_photo"`
	Photos       []PostPhoto `json:"photos"`
}

// Feed is the personalized timeline for a viewer, plus the viewer's own
// header attributes.
type Feed struct {
	Username     string     `json:"username"`
	ProfilePhoto string     `json:"profile_photo"`
	Posts        []FeedPost `json:"posts"`
}
