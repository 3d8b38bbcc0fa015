package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

// savedPostService is the concrete implementation of SavedPostService
type savedPostService struct {
	savedRepo repository.SavedPostRepository
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	log       zerolog.Logger
}

// newSavedPostService creates a new SavedPostService
func newSavedPostService(repos *repository.Repositories, log zerolog.Logger) SavedPostService {
	return &savedPostService{
		savedRepo: repos.SavedPost,
		postRepo:  repos.Post,
		userRepo:  repos.User,
		log:       log.With().Str("service", "saved_post").Logger(),
	}
}

// Save bookmarks a post for the requester
func (s *savedPostService) Save(ctx context.Context, requester *models.User, postID string) (*models.SavedPost, error) {
	if postID == "" {
		return nil, apperr.InvalidInput("post ID is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	existing, err := s.savedRepo.GetByUserAndPost(ctx, requester.ID, post.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("post is already saved")
	}

	saved := &models.SavedPost{
		ID:     uuid.New().String(),
		UserID: requester.ID,
		PostID: post.ID,
	}
	if err := s.savedRepo.Create(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// Unsave removes a bookmark
func (s *savedPostService) Unsave(ctx context.Context, requester *models.User, postID string) error {
	removed, err := s.savedRepo.Delete(ctx, requester.ID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("saved post not found")
	}
	return nil
}

// ListMine returns the requester's bookmarks with the posts attached.
// Bookmarks whose post has since been deleted are skipped.
func (s *savedPostService) ListMine(ctx context.Context, requester *models.User, page, limit int) ([]*models.SavedPostView, models.Pagination, error) {
	offset := (page - 1) * limit
	saved, err := s.savedRepo.ListByUser(ctx, requester.ID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.savedRepo.CountByUser(ctx, requester.ID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	views := make([]*models.SavedPostView, 0, len(saved))
	for _, bookmark := range saved {
		post, err := s.postRepo.GetByID(ctx, bookmark.PostID)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		if post == nil {
			continue
		}
		owner, err := s.userRepo.GetByID(ctx, post.UserID)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		if owner == nil {
			return nil, models.Pagination{}, fmt.Errorf("owner %s missing for post %s", post.UserID, post.ID)
		}
		views = append(views, &models.SavedPostView{
			SavedPost: *bookmark,
			Post:      &models.PostView{Post: *post, User: projectIdentity(owner, post)},
		})
	}

	return views, models.NewPagination(page, limit, len(saved), total), nil
}

// IsSaved reports whether the requester has bookmarked the post
func (s *savedPostService) IsSaved(ctx context.Context, requester *models.User, postID string) (bool, error) {
	existing, err := s.savedRepo.GetByUserAndPost(ctx, requester.ID, postID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}
