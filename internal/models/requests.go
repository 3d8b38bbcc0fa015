package models

// AddCommentRequest is the body of POST /v1/comments
type AddCommentRequest struct {
	PostID          string  `json:"postId"`
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parentCommentId"`
}

// UpdateCommentRequest is the body of PATCH /v1/comments/:comment_id
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// DeleteCommentResult reports a cascading comment delete. TotalDeleted
// counts descendants only, excluding the deleted comment itself.
type DeleteCommentResult struct {
	DeletedCommentID string `json:"deletedCommentId"`
	TotalDeleted     int    `json:"totalDeleted"`
}

// CreatePostRequest is the body of POST /v1/posts
type CreatePostRequest struct {
	Type         string   `json:"type"`
	ItemName     string   `json:"itemName"`
	Description  string   `json:"description"`
	LocationName string   `json:"locationName"`
	Longitude    *float64 `json:"longitude"`
	Latitude     *float64 `json:"latitude"`
	Images       []string `json:"images"`
	RewardAmount float64  `json:"rewardAmount"`
	IsAnonymous  bool     `json:"isAnonymous"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// UpdatePostRequest is the body of PATCH /v1/posts/:post_id. Nil fields are
// left unchanged.
type UpdatePostRequest struct {
	Description  *string  `json:"description"`
	LocationName *string  `json:"locationName"`
	Images       []string `json:"images"`
	RewardAmount *float64 `json:"rewardAmount"`
	Tags         []string `json:"tags"`
}

// CreateClaimRequest is the body of POST /v1/claims
type CreateClaimRequest struct {
	PostID  string `json:"postId"`
	Message string `json:"message"`
}

// CreateCategoryRequest is the body of POST /v1/categories
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
