// Package models defines the persistent entities of the service and the
// read models assembled from them.
package models

import "time"

// User is a registered account. PassHash is never serialized.
type User struct {
	ID           int64
	Email        string
	Username     string
	PassHash     string
	FirstName    string
	LastName     string
	Phone        string
	DOB          string
	ProfilePhoto string
	Bio          string
	Location     string
	Private      bool
	Active       bool
	CreatedAt    time.Time
}

// UserSummary is the public projection of a user used in listings.
type UserSummary struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
	Location     string `json:"location"`
	Bio          string `json:"bio"`
}

// Follower is a user summary annotated with whether the listing owner
// follows this user back.
type Follower struct {
	UserSummary
	FollowsBack int `json:"follows_back"`
}

// Person is a user summary annotated with both relationship directions
// relative to the caller.
type Person struct {
	UserSummary
	IsFollowing  bool `json:"is_following"`
	IsFollowedBy bool `json:"is_followed_by"`
}
