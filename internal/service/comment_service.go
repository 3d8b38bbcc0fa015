package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

// maxThreadDepth caps tree traversal. The write path cannot create cycles
// (a parent must exist before a child references it), so the cap only
// guards against corrupted data.
const maxThreadDepth = 100

// commentService is the concrete implementation of CommentService
type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	dispatcher  *Dispatcher
	cfg         *config.CommentConfig
	log         zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(repos *repository.Repositories, dispatcher *Dispatcher, cfg *config.CommentConfig, log zerolog.Logger) CommentService {
	return &commentService{
		commentRepo: repos.Comment,
		postRepo:    repos.Post,
		userRepo:    repos.User,
		dispatcher:  dispatcher,
		cfg:         cfg,
		log:         log.With().Str("service", "comment").Logger(),
	}
}

// validateContent trims and bounds comment content
func (s *commentService) validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.InvalidInput("comment content is required")
	}
	if utf8.RuneCountInString(content) > s.cfg.MaxContentLength {
		return "", apperr.InvalidInput("comment cannot exceed %d characters", s.cfg.MaxContentLength)
	}
	return content, nil
}

// resolveThreadRoot returns the root comment of the parent's thread. A
// parent without a stored root pointer is itself the root.
func (s *commentService) resolveThreadRoot(ctx context.Context, parent *models.Comment) (*models.Comment, error) {
	if parent.RootCommentID == nil {
		return parent, nil
	}
	root, err := s.commentRepo.GetByID(ctx, *parent.RootCommentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread root: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("thread root %s missing for comment %s", *parent.RootCommentID, parent.ID)
	}
	return root, nil
}

// canParticipate applies the owner-moderated participation rule. A thread
// rooted by the post owner is open to everyone; any other thread is a
// private back-and-forth between the post owner and the root author.
func (s *commentService) canParticipate(post *models.Post, rootAuthorID, requesterID string) bool {
	if !s.cfg.ModeratedThreads {
		return true
	}
	if post.IsOwnedBy(rootAuthorID) {
		return true
	}
	return post.IsOwnedBy(requesterID) || requesterID == rootAuthorID
}

// Add creates a comment or reply on a post
func (s *commentService) Add(ctx context.Context, requester *models.User, req *models.AddCommentRequest) (*models.CommentNode, error) {
	if req.PostID == "" {
		return nil, apperr.InvalidInput("post ID is required")
	}
	content, err := s.validateContent(req.Content)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	var parentID, rootID *string
	rootAuthorID := requester.ID

	if req.ParentCommentID != nil && *req.ParentCommentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperr.NotFound("parent comment not found")
		}
		if parent.PostID != post.ID {
			return nil, apperr.ParentMismatch("parent comment does not belong to this post")
		}

		root, err := s.resolveThreadRoot(ctx, parent)
		if err != nil {
			return nil, err
		}
		if !s.canParticipate(post, root.UserID, requester.ID) {
			return nil, apperr.Forbidden("only the post owner and the original commenter can participate in this conversation")
		}

		parentID = &parent.ID
		rootCommentID := root.ID
		rootID = &rootCommentID
		rootAuthorID = root.UserID
	}

	comment := &models.Comment{
		ID:              uuid.New().String(),
		PostID:          post.ID,
		UserID:          requester.ID,
		Content:         content,
		ParentCommentID: parentID,
		RootCommentID:   rootID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.AddComments(ctx, post.ID, 1); err != nil {
		return nil, err
	}

	// Best-effort notification: the comment is already durable, so a
	// delivery problem must never surface to the caller.
	if requester.ID != post.UserID {
		title := "New comment on your post"
		if parentID != nil {
			title = "New reply on your post"
		}
		s.dispatcher.Dispatch(post.UserID, models.NotificationTypeComment, title, content, map[string]string{
			"postId":    post.ID,
			"commentId": comment.ID,
		})
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("post_id", post.ID).
		Bool("is_reply", parentID != nil).
		Msg("Comment created")

	node := s.buildNode(comment, requester, post, requester, nil, rootAuthorID)
	return node, nil
}

// buildNode assembles one response node: projected author identity plus the
// capability summary relative to the requester.
func (s *commentService) buildNode(comment *models.Comment, author *models.User, post *models.Post, requester *models.User, replies []*models.CommentNode, rootAuthorID string) *models.CommentNode {
	if replies == nil {
		replies = []*models.CommentNode{}
	}
	isOwn := comment.UserID == requester.ID
	return &models.CommentNode{
		CommentID: comment.ID,
		User: models.CommentAuthor{
			PublicUser:  projectIdentity(author, post),
			IsPostOwner: post.IsOwnedBy(comment.UserID),
		},
		Content:   comment.Content,
		IsEdited:  comment.IsEdited,
		CreatedAt: comment.CreatedAt,
		CanReply:  s.canParticipate(post, rootAuthorID, requester.ID),
		CanEdit:   isOwn,
		CanDelete: isOwn,
		Replies:   replies,
	}
}

// ListByPost returns a page of root comments, newest first, each with its
// full reply subtree nested oldest-first.
func (s *commentService) ListByPost(ctx context.Context, requester *models.User, postID string, page, limit int) (*models.CommentPage, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	offset := (page - 1) * limit
	roots, err := s.commentRepo.ListRoots(ctx, post.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	totalRoots, err := s.commentRepo.CountRoots(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	// One bulk read of the whole discussion; the tree is assembled in
	// memory so each comment is visited exactly once.
	all, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*models.Comment)
	authorIDs := make([]string, 0, len(all))
	seen := make(map[string]bool)
	for _, comment := range all {
		if comment.ParentCommentID != nil {
			children[*comment.ParentCommentID] = append(children[*comment.ParentCommentID], comment)
		}
		if !seen[comment.UserID] {
			seen[comment.UserID] = true
			authorIDs = append(authorIDs, comment.UserID)
		}
	}

	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	nodes := make([]*models.CommentNode, 0, len(roots))
	for _, root := range roots {
		node, err := s.assemble(root, children, authors, post, requester, root.UserID, 0)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return &models.CommentPage{
		Comments:   nodes,
		Pagination: models.NewPagination(page, limit, len(roots), totalRoots),
	}, nil
}

// assemble builds the subtree below comment. ListByPost returns comments
// oldest-first, so every child slice is already in chronological order.
func (s *commentService) assemble(comment *models.Comment, children map[string][]*models.Comment, authors map[string]*models.User, post *models.Post, requester *models.User, rootAuthorID string, depth int) (*models.CommentNode, error) {
	author := authors[comment.UserID]
	if author == nil {
		return nil, fmt.Errorf("author %s missing for comment %s", comment.UserID, comment.ID)
	}

	replies := []*models.CommentNode{}
	if depth < maxThreadDepth {
		for _, child := range children[comment.ID] {
			node, err := s.assemble(child, children, authors, post, requester, rootAuthorID, depth+1)
			if err != nil {
				return nil, err
			}
			replies = append(replies, node)
		}
	}

	return s.buildNode(comment, author, post, requester, replies, rootAuthorID), nil
}

// Update edits a comment's content. Only the original author may edit, and
// thread relationships are immutable.
func (s *commentService) Update(ctx context.Context, requester *models.User, commentID, content string) (*models.Comment, error) {
	content, err := s.validateContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if comment.UserID != requester.ID {
		return nil, apperr.Forbidden("you can only edit your own comments")
	}

	comment.Content = content
	comment.IsEdited = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete removes a comment and its entire reply subtree, keeping the post's
// comment counter in step with the number of rows removed.
func (s *commentService) Delete(ctx context.Context, requester *models.User, commentID string) (*models.DeleteCommentResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if comment.UserID != requester.ID {
		return nil, apperr.Forbidden("you can only delete your own comments")
	}

	removed, err := s.commentRepo.DeleteSubtree(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.AddComments(ctx, comment.PostID, -removed); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("post_id", comment.PostID).
		Int("removed", removed).
		Msg("Comment subtree deleted")

	return &models.DeleteCommentResult{
		DeletedCommentID: comment.ID,
		TotalDeleted:     removed - 1,
	}, nil
}
