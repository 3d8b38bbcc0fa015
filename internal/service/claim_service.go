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

// claimService is the concrete implementation of ClaimService
type claimService struct {
	claimRepo  repository.ClaimRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// newClaimService creates a new ClaimService
func newClaimService(repos *repository.Repositories, dispatcher *Dispatcher, log zerolog.Logger) ClaimService {
	return &claimService{
		claimRepo:  repos.Claim,
		postRepo:   repos.Post,
		userRepo:   repos.User,
		dispatcher: dispatcher,
		log:        log.With().Str("service", "claim").Logger(),
	}
}

// inverseClaimType maps the post type to the claim type: claiming a lost post
// means "I found it", claiming a found post means "it's mine".
func inverseClaimType(postType string) string {
	if postType == models.PostTypeLost {
		return models.ClaimTypeFound
	}
	return models.ClaimTypeLost
}

// Create files a claim against an active post
func (s *claimService) Create(ctx context.Context, requester *models.User, req *models.CreateClaimRequest) (*models.ClaimView, error) {
	if req.PostID == "" {
		return nil, apperr.InvalidInput("post ID is required")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperr.InvalidInput("claim message is required")
	}

	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	if post.IsOwnedBy(requester.ID) {
		return nil, apperr.InvalidInput("you cannot claim your own post")
	}
	if post.Status != models.PostStatusActive {
		return nil, apperr.InvalidInput("this post is no longer accepting claims")
	}

	existing, err := s.claimRepo.GetByPostAndClaimer(ctx, post.ID, requester.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("you have already claimed this post")
	}

	claim := &models.Claim{
		ID:        uuid.New().String(),
		PostID:    post.ID,
		ClaimerID: requester.ID,
		ClaimType: inverseClaimType(post.Type),
		Status:    models.ClaimStatusPending,
		Message:   message,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	if err := s.postRepo.AddClaims(ctx, post.ID, 1); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(post.UserID, models.NotificationTypeClaim,
		"New claim on your post", message, map[string]string{
			"postId":  post.ID,
			"claimId": claim.ID,
		})

	s.log.Info().
		Str("claim_id", claim.ID).
		Str("post_id", post.ID).
		Str("claim_type", claim.ClaimType).
		Msg("Claim created")

	return &models.ClaimView{Claim: *claim, Claimer: requester.PublicProfile()}, nil
}

// buildViews attaches claimer profiles and post summaries to a claim page
func (s *claimService) buildViews(ctx context.Context, claims []*models.Claim) ([]*models.ClaimView, error) {
	claimerIDs := make([]string, 0, len(claims))
	seenClaimer := make(map[string]bool)
	postIDs := make([]string, 0, len(claims))
	seenPost := make(map[string]bool)
	for _, claim := range claims {
		if !seenClaimer[claim.ClaimerID] {
			seenClaimer[claim.ClaimerID] = true
			claimerIDs = append(claimerIDs, claim.ClaimerID)
		}
		if !seenPost[claim.PostID] {
			seenPost[claim.PostID] = true
			postIDs = append(postIDs, claim.PostID)
		}
	}

	claimers, err := s.userRepo.GetByIDs(ctx, claimerIDs)
	if err != nil {
		return nil, err
	}

	posts := make(map[string]*models.PostView, len(postIDs))
	for _, postID := range postIDs {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			continue
		}
		owner, err := s.userRepo.GetByID(ctx, post.UserID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, fmt.Errorf("owner %s missing for post %s", post.UserID, post.ID)
		}
		posts[postID] = &models.PostView{Post: *post, User: projectIdentity(owner, post)}
	}

	views := make([]*models.ClaimView, 0, len(claims))
	for _, claim := range claims {
		claimer := claimers[claim.ClaimerID]
		if claimer == nil {
			return nil, fmt.Errorf("claimer %s missing for claim %s", claim.ClaimerID, claim.ID)
		}
		views = append(views, &models.ClaimView{
			Claim:   *claim,
			Claimer: claimer.PublicProfile(),
			Post:    posts[claim.PostID],
		})
	}
	return views, nil
}

func (s *claimService) list(ctx context.Context, filter *models.ClaimFilter, page, limit int) ([]*models.ClaimView, models.Pagination, error) {
	offset := (page - 1) * limit
	claims, err := s.claimRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.claimRepo.CountFiltered(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	views, err := s.buildViews(ctx, claims)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return views, models.NewPagination(page, limit, len(claims), total), nil
}

// ListByPost returns claims filed against one post. Only the post owner may
// see them.
func (s *claimService) ListByPost(ctx context.Context, requester *models.User, postID, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if post == nil {
		return nil, models.Pagination{}, apperr.NotFound("post not found")
	}
	if !post.IsOwnedBy(requester.ID) {
		return nil, models.Pagination{}, apperr.Forbidden("only the post owner can view claims on this post")
	}
	return s.list(ctx, &models.ClaimFilter{PostID: postID, Status: status}, page, limit)
}

// ListMine returns the requester's own claims
func (s *claimService) ListMine(ctx context.Context, requester *models.User, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error) {
	return s.list(ctx, &models.ClaimFilter{ClaimerID: requester.ID, Status: status}, page, limit)
}

// ListOnMyPosts returns claims filed against any of the requester's posts
func (s *claimService) ListOnMyPosts(ctx context.Context, requester *models.User, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error) {
	return s.list(ctx, &models.ClaimFilter{PostOwner: requester.ID, Status: status}, page, limit)
}

// UpdateStatus accepts or rejects a pending claim. Only the owner of the
// claimed post may decide, and accepting also marks the post claimed.
func (s *claimService) UpdateStatus(ctx context.Context, requester *models.User, claimID, status string) (*models.ClaimView, error) {
	if status != models.ClaimStatusAccepted && status != models.ClaimStatusRejected {
		return nil, apperr.InvalidInput("status must be 'accepted' or 'rejected'")
	}

	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, apperr.NotFound("claim not found")
	}

	post, err := s.postRepo.GetByID(ctx, claim.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	if !post.IsOwnedBy(requester.ID) {
		return nil, apperr.Forbidden("only the post owner can decide on claims")
	}
	if claim.Status != models.ClaimStatusPending {
		return nil, apperr.Conflict("this claim has already been %s", claim.Status)
	}

	if err := s.claimRepo.UpdateStatus(ctx, claim.ID, status); err != nil {
		return nil, err
	}
	claim.Status = status

	if status == models.ClaimStatusAccepted {
		if err := s.postRepo.UpdateStatus(ctx, post.ID, models.PostStatusClaimed); err != nil {
			return nil, err
		}
	}

	title := "Your claim was accepted"
	if status == models.ClaimStatusRejected {
		title = "Your claim was rejected"
	}
	s.dispatcher.Dispatch(claim.ClaimerID, models.NotificationTypeStatusUpdate,
		title, post.ItemName, map[string]string{
			"postId":  post.ID,
			"claimId": claim.ID,
		})

	s.log.Info().
		Str("claim_id", claim.ID).
		Str("status", status).
		Msg("Claim status updated")

	claimer, err := s.userRepo.GetByID(ctx, claim.ClaimerID)
	if err != nil {
		return nil, err
	}
	if claimer == nil {
		return nil, fmt.Errorf("claimer %s missing for claim %s", claim.ClaimerID, claim.ID)
	}
	return &models.ClaimView{Claim: *claim, Claimer: claimer.PublicProfile()}, nil
}

// Delete withdraws a pending claim. Only the claimer may withdraw.
func (s *claimService) Delete(ctx context.Context, requester *models.User, claimID string) error {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.NotFound("claim not found")
	}
	if claim.ClaimerID != requester.ID {
		return apperr.Forbidden("you can only withdraw your own claims")
	}
	if claim.Status != models.ClaimStatusPending {
		return apperr.Conflict("only pending claims can be withdrawn")
	}

	if err := s.claimRepo.Delete(ctx, claim.ID); err != nil {
		return err
	}

	if err := s.postRepo.AddClaims(ctx, claim.PostID, -1); err != nil {
		return err
	}

	s.log.Info().Str("claim_id", claim.ID).Msg("Claim withdrawn")
	return nil
}
