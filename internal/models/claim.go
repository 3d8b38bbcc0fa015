package models

import (
	"time"
)

// Claim types: "found" claims a lost post (I found your item), "lost" claims
// a found post (that's my item).
const (
	ClaimTypeFound = "found"
	ClaimTypeLost  = "lost"
)

// Claim statuses
const (
	ClaimStatusPending  = "pending"
	ClaimStatusAccepted = "accepted"
	ClaimStatusRejected = "rejected"
)

// Claim represents a user's claim on a post
type Claim struct {
	ID        string    `json:"claimId" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	ClaimerID string    `json:"claimerId" db:"claimer_id"`
	ClaimType string    `json:"claimType" db:"claim_type"`
	Status    string    `json:"status" db:"status"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ClaimView is a claim with claimer profile and post summary attached
type ClaimView struct {
	Claim
	Claimer PublicUser `json:"claimer"`
	Post    *PostView  `json:"post,omitempty"`
}

// ClaimFilter narrows claim listings
type ClaimFilter struct {
	PostID    string
	ClaimerID string
	PostOwner string
	Status    string
}
