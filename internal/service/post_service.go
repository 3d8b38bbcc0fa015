package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	log          zerolog.Logger
}

// newPostService creates a new PostService
func newPostService(repos *repository.Repositories, log zerolog.Logger) PostService {
	return &postService{
		postRepo:     repos.Post,
		userRepo:     repos.User,
		categoryRepo: repos.Category,
		log:          log.With().Str("service", "post").Logger(),
	}
}

// Create validates and persists a new listing
func (s *postService) Create(ctx context.Context, requester *models.User, req *models.CreatePostRequest) (*models.PostView, error) {
	if req.Type == "" || req.ItemName == "" || req.Description == "" || req.Category == "" {
		return nil, apperr.InvalidInput("type, item name, description, and category are required")
	}
	if !models.ValidPostTypes[req.Type] {
		return nil, apperr.InvalidInput("type must be either 'lost' or 'found'")
	}
	if req.Type == models.PostTypeLost && req.RewardAmount <= 0 {
		return nil, apperr.InvalidInput("reward amount is required for lost posts")
	}
	if req.Type == models.PostTypeFound && (req.LocationName == "" || len(req.Images) == 0) {
		return nil, apperr.InvalidInput("location and at least one image are required for found posts")
	}
	if req.IsAnonymous && requester.Username == "" {
		return nil, apperr.InvalidInput("please set a username in your profile to post anonymously")
	}

	category := strings.ToLower(req.Category)
	existing, err := s.categoryRepo.GetByName(ctx, category)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.InvalidInput("unknown category %q", category)
	}

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, strings.ToLower(tag))
	}

	post := &models.Post{
		ID:           uuid.New().String(),
		UserID:       requester.ID,
		Type:         req.Type,
		ItemName:     req.ItemName,
		Description:  req.Description,
		LocationName: req.LocationName,
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		Images:       req.Images,
		RewardAmount: req.RewardAmount,
		IsAnonymous:  req.IsAnonymous,
		Category:     category,
		Tags:         tags,
		Status:       models.PostStatusActive,
	}
	if post.Images == nil {
		post.Images = []string{}
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("post_id", post.ID).
		Str("type", post.Type).
		Bool("anonymous", post.IsAnonymous).
		Msg("Post created")

	return s.withOwner(post, requester), nil
}

// withOwner attaches the (possibly masked) owner profile to a post
func (s *postService) withOwner(post *models.Post, owner *models.User) *models.PostView {
	return &models.PostView{
		Post: *post,
		User: projectIdentity(owner, post),
	}
}

// loadView fetches the owner and attaches it to the post
func (s *postService) loadView(ctx context.Context, post *models.Post) (*models.PostView, error) {
	owner, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %s missing for post %s", post.UserID, post.ID)
	}
	return s.withOwner(post, owner), nil
}

// GetByID returns a single post with its owner attached
func (s *postService) GetByID(ctx context.Context, id string) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	return s.loadView(ctx, post)
}

// List returns a filtered page of posts, newest first
func (s *postService) List(ctx context.Context, filter *models.PostFilter, page, limit int) ([]*models.PostView, models.Pagination, error) {
	offset := (page - 1) * limit
	posts, err := s.postRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.postRepo.CountFiltered(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	ownerIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool)
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			ownerIDs = append(ownerIDs, post.UserID)
		}
	}
	owners, err := s.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	views := make([]*models.PostView, 0, len(posts))
	for _, post := range posts {
		owner := owners[post.UserID]
		if owner == nil {
			return nil, models.Pagination{}, fmt.Errorf("owner %s missing for post %s", post.UserID, post.ID)
		}
		views = append(views, s.withOwner(post, owner))
	}

	return views, models.NewPagination(page, limit, len(posts), total), nil
}

// Update applies partial edits to a post. Only the owner may edit.
func (s *postService) Update(ctx context.Context, requester *models.User, id string, req *models.UpdatePostRequest) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	if !post.IsOwnedBy(requester.ID) {
		return nil, apperr.Forbidden("you are not authorized to update this post")
	}

	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.LocationName != nil {
		post.LocationName = *req.LocationName
	}
	if req.Images != nil {
		post.Images = req.Images
	}
	if req.RewardAmount != nil {
		if *req.RewardAmount < 0 {
			return nil, apperr.InvalidInput("reward amount cannot be negative")
		}
		post.RewardAmount = *req.RewardAmount
	}
	if req.Tags != nil {
		tags := make([]string, 0, len(req.Tags))
		for _, tag := range req.Tags {
			tags = append(tags, strings.ToLower(tag))
		}
		post.Tags = tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.withOwner(post, requester), nil
}

// UpdateStatus sets the lifecycle status. Only the owner may change it.
func (s *postService) UpdateStatus(ctx context.Context, requester *models.User, id, status string) (*models.Post, error) {
	if !models.ValidPostStatuses[status] {
		return nil, apperr.InvalidInput("valid status is required (active, claimed, returned)")
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	if !post.IsOwnedBy(requester.ID) {
		return nil, apperr.Forbidden("you are not authorized to update this post")
	}

	if err := s.postRepo.UpdateStatus(ctx, post.ID, status); err != nil {
		return nil, err
	}
	post.Status = status

	return post, nil
}

// Delete removes a post and, through the schema, its comments, claims and
// bookmarks. Only the owner may delete.
func (s *postService) Delete(ctx context.Context, requester *models.User, id string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.NotFound("post not found")
	}
	if !post.IsOwnedBy(requester.ID) {
		return apperr.Forbidden("you are not authorized to delete this post")
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.log.Info().Str("post_id", post.ID).Msg("Post deleted")
	return nil
}
