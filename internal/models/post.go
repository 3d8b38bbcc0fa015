package models

import (
	"time"
)

// Post types
const (
	PostTypeLost  = "lost"
	PostTypeFound = "found"
)

// Post statuses
const (
	PostStatusActive   = "active"
	PostStatusClaimed  = "claimed"
	PostStatusReturned = "returned"
)

// ValidPostTypes is the set of allowed post types
var ValidPostTypes = map[string]bool{
	PostTypeLost:  true,
	PostTypeFound: true,
}

// ValidPostStatuses is the set of allowed post statuses
var ValidPostStatuses = map[string]bool{
	PostStatusActive:   true,
	PostStatusClaimed:  true,
	PostStatusReturned: true,
}

// Post represents a lost or found item listing
type Post struct {
	ID            string    `json:"postId" db:"id"`
	UserID        string    `json:"userId" db:"user_id"`
	Type          string    `json:"type" db:"type"`
	ItemName      string    `json:"itemName" db:"item_name"`
	Description   string    `json:"description" db:"description"`
	LocationName  string    `json:"locationName" db:"location_name"`
	Longitude     *float64  `json:"longitude,omitempty" db:"longitude"`
	Latitude      *float64  `json:"latitude,omitempty" db:"latitude"`
	Images        []string  `json:"images" db:"images"`
	RewardAmount  float64   `json:"rewardAmount" db:"reward_amount"`
	IsAnonymous   bool      `json:"isAnonymous" db:"is_anonymous"`
	Category      string    `json:"category" db:"category"`
	Tags          []string  `json:"tags" db:"tags"`
	Status        string    `json:"status" db:"status"`
	TotalClaims   int       `json:"totalClaims" db:"total_claims"`
	TotalComments int       `json:"totalComments" db:"total_comments"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether userID owns the post
func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}

// PostView is a post with its owner profile attached. The owner is the
// anonymized view when the post is anonymous.
type PostView struct {
	Post
	User PublicUser `json:"user"`
}

// PostFilter narrows post listings
type PostFilter struct {
	UserID   string
	Type     string
	Category string
	Status   string
	Location string
	Search   string
}
