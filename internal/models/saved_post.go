package models

import (
	"time"
)

// SavedPost is a user's bookmark of a post. A user can save a post at most
// once.
type SavedPost struct {
	ID        string    `json:"savedPostId" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SavedPostView is a saved post with the post (and its owner) attached
type SavedPostView struct {
	SavedPost
	Post *PostView `json:"post"`
}
