package models

import (
	"time"
)

// Comment represents a single message in a post's discussion. Comments form
// a tree per post: ParentCommentID is nil for root comments, and
// RootCommentID points at the first comment of the thread (nil when the
// comment is itself the root).
type Comment struct {
	ID              string    `json:"commentId" db:"id"`
	PostID          string    `json:"postId" db:"post_id"`
	UserID          string    `json:"userId" db:"user_id"`
	Content         string    `json:"content" db:"content"`
	ParentCommentID *string   `json:"parentCommentId" db:"parent_comment_id"`
	RootCommentID   *string   `json:"-" db:"root_comment_id"`
	IsEdited        bool      `json:"isEdited" db:"is_edited"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsRoot reports whether the comment starts a thread
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil
}

// ThreadRootID returns the ID of the comment's thread root. A comment with
// no stored root pointer is its own root.
func (c *Comment) ThreadRootID() string {
	if c.RootCommentID != nil {
		return *c.RootCommentID
	}
	return c.ID
}

// CommentAuthor is the projected author identity attached to a comment node
type CommentAuthor struct {
	PublicUser
	IsPostOwner bool `json:"isPostOwner"`
}

// CommentNode is one comment in the assembled tree returned to clients.
// Replies are ordered oldest-first; sibling roots are ordered newest-first.
type CommentNode struct {
	CommentID string        `json:"commentId"`
	User      CommentAuthor `json:"user"`
	Content   string        `json:"content"`
	IsEdited  bool          `json:"isEdited"`
	CreatedAt time.Time     `json:"createdAt"`
	CanReply  bool          `json:"canReply"`
	CanEdit   bool          `json:"canEdit"`
	CanDelete bool          `json:"canDelete"`
	Replies   []*CommentNode `json:"replies"`
}

// CommentPage is a page of root comments with nested replies
type CommentPage struct {
	Comments   []*CommentNode `json:"comments"`
	Pagination Pagination     `json:"pagination"`
}
