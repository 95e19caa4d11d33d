package models

import "time"

// Photo is an uploaded image owned by a user. Used both for profile and
// gallery photos and as post attachments (linked via post_photos).
type Photo struct {
	ID        int64
	UserID    int64
	URL       string
	Caption   string
	PhotoDate time.Time
}

// GalleryPhoto is the gallery projection of a photo.
type GalleryPhoto struct {
	URL       string    `json:"photo_url"`
	Caption   string    `json:"photo_caption"`
	PhotoDate time.Time `json:"photo_date"`
}
