package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lost-and-found-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if user, exists := m.Users[id]; exists {
			result[id] = user
		}
	}
	return result, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// clock hands out strictly increasing timestamps so ordering assertions in
// tests are deterministic even when rows are created in the same instant.
type clock struct {
	base time.Time
	seq  int
}

func (c *clock) next() time.Time {
	if c.base.IsZero() {
		c.base = time.Now()
	}
	c.seq++
	return c.base.Add(time.Duration(c.seq) * time.Millisecond)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts       map[string]*models.Post
	CreateError error
	UpdateError error
	clock       clock
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = m.clock.next()
		post.UpdatedAt = post.CreatedAt
	}
	m.Posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return m.Posts[id], nil
}

func (m *MockPostRepository) matches(post *models.Post, filter *models.PostFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != "" && post.UserID != filter.UserID {
		return false
	}
	if filter.Type != "" && post.Type != filter.Type {
		return false
	}
	if filter.Category != "" && post.Category != filter.Category {
		return false
	}
	if filter.Status != "" && post.Status != filter.Status {
		return false
	}
	if filter.Location != "" && !strings.Contains(strings.ToLower(post.LocationName), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(post.ItemName), needle) &&
			!strings.Contains(strings.ToLower(post.Description), needle) {
			return false
		}
	}
	return true
}

func (m *MockPostRepository) List(ctx context.Context, filter *models.PostFilter, limit, offset int) ([]*models.Post, error) {
	var matched []*models.Post
	for _, post := range m.Posts {
		if m.matches(post, filter) {
			matched = append(matched, post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockPostRepository) CountFiltered(ctx context.Context, filter *models.PostFilter) (int, error) {
	count := 0
	for _, post := range m.Posts {
		if m.matches(post, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if post, exists := m.Posts[id]; exists {
		post.Status = status
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	delete(m.Posts, id)
	return nil
}

func (m *MockPostRepository) AddComments(ctx context.Context, id string, delta int) error {
	if post, exists := m.Posts[id]; exists {
		post.TotalComments += delta
		if post.TotalComments < 0 {
			post.TotalComments = 0
		}
	}
	return nil
}

func (m *MockPostRepository) AddClaims(ctx context.Context, id string, delta int) error {
	if post, exists := m.Posts[id]; exists {
		post.TotalClaims += delta
		if post.TotalClaims < 0 {
			post.TotalClaims = 0
		}
	}
	return nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	return len(m.Posts), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
	clock       clock
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = m.clock.next()
		comment.UpdatedAt = comment.CreatedAt
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return m.Comments[id], nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = m.clock.next()
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) DeleteSubtree(ctx context.Context, id string) (int, error) {
	if _, exists := m.Comments[id]; !exists {
		return 0, nil
	}
	doomed := map[string]bool{id: true}
	for {
		grew := false
		for _, comment := range m.Comments {
			if doomed[comment.ID] || comment.ParentCommentID == nil {
				continue
			}
			if doomed[*comment.ParentCommentID] {
				doomed[comment.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	for commentID := range doomed {
		delete(m.Comments, commentID)
	}
	return len(doomed), nil
}

func (m *MockCommentRepository) ListRoots(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	var roots []*models.Comment
	for _, comment := range m.Comments {
		if comment.PostID == postID && comment.ParentCommentID == nil {
			roots = append(roots, comment)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	if offset >= len(roots) {
		return nil, nil
	}
	roots = roots[offset:]
	if limit > 0 && len(roots) > limit {
		roots = roots[:limit]
	}
	return roots, nil
}

func (m *MockCommentRepository) CountRoots(ctx context.Context, postID string) (int, error) {
	count := 0
	for _, comment := range m.Comments {
		if comment.PostID == postID && comment.ParentCommentID == nil {
			count++
		}
	}
	return count, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.Comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockClaimRepository is a mock implementation of ClaimRepository. Set Posts
// to resolve the PostOwner filter the way the SQL subquery does.
type MockClaimRepository struct {
	Claims      map[string]*models.Claim
	Posts       *MockPostRepository
	CreateError error
	clock       clock
}

func NewMockClaimRepository() *MockClaimRepository {
	return &MockClaimRepository{
		Claims: make(map[string]*models.Claim),
	}
}

func (m *MockClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = m.clock.next()
		claim.UpdatedAt = claim.CreatedAt
	}
	m.Claims[claim.ID] = claim
	return nil
}

func (m *MockClaimRepository) GetByID(ctx context.Context, id string) (*models.Claim, error) {
	return m.Claims[id], nil
}

func (m *MockClaimRepository) GetByPostAndClaimer(ctx context.Context, postID, claimerID string) (*models.Claim, error) {
	for _, claim := range m.Claims {
		if claim.PostID == postID && claim.ClaimerID == claimerID {
			return claim, nil
		}
	}
	return nil, nil
}

func (m *MockClaimRepository) matches(claim *models.Claim, filter *models.ClaimFilter) bool {
	if filter == nil {
		return true
	}
	if filter.PostID != "" && claim.PostID != filter.PostID {
		return false
	}
	if filter.ClaimerID != "" && claim.ClaimerID != filter.ClaimerID {
		return false
	}
	if filter.Status != "" && claim.Status != filter.Status {
		return false
	}
	if filter.PostOwner != "" {
		if m.Posts == nil {
			return false
		}
		post := m.Posts.Posts[claim.PostID]
		if post == nil || post.UserID != filter.PostOwner {
			return false
		}
	}
	return true
}

func (m *MockClaimRepository) List(ctx context.Context, filter *models.ClaimFilter, limit, offset int) ([]*models.Claim, error) {
	var matched []*models.Claim
	for _, claim := range m.Claims {
		if m.matches(claim, filter) {
			matched = append(matched, claim)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockClaimRepository) CountFiltered(ctx context.Context, filter *models.ClaimFilter) (int, error) {
	count := 0
	for _, claim := range m.Claims {
		if m.matches(claim, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockClaimRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if claim, exists := m.Claims[id]; exists {
		claim.Status = status
	}
	return nil
}

func (m *MockClaimRepository) Delete(ctx context.Context, id string) error {
	delete(m.Claims, id)
	return nil
}

func (m *MockClaimRepository) Count(ctx context.Context) (int, error) {
	return len(m.Claims), nil
}

// MockSavedPostRepository is a mock implementation of SavedPostRepository
type MockSavedPostRepository struct {
	Saved map[string]*models.SavedPost
	clock clock
}

func NewMockSavedPostRepository() *MockSavedPostRepository {
	return &MockSavedPostRepository{
		Saved: make(map[string]*models.SavedPost),
	}
}

func (m *MockSavedPostRepository) Create(ctx context.Context, saved *models.SavedPost) error {
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = m.clock.next()
	}
	m.Saved[saved.ID] = saved
	return nil
}

func (m *MockSavedPostRepository) GetByUserAndPost(ctx context.Context, userID, postID string) (*models.SavedPost, error) {
	for _, saved := range m.Saved {
		if saved.UserID == userID && saved.PostID == postID {
			return saved, nil
		}
	}
	return nil, nil
}

func (m *MockSavedPostRepository) Delete(ctx context.Context, userID, postID string) (bool, error) {
	for id, saved := range m.Saved {
		if saved.UserID == userID && saved.PostID == postID {
			delete(m.Saved, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSavedPostRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.SavedPost, error) {
	var matched []*models.SavedPost
	for _, saved := range m.Saved {
		if saved.UserID == userID {
			matched = append(matched, saved)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockSavedPostRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, saved := range m.Saved {
		if saved.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*models.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.Categories[category.Name] = category
	return nil
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return m.Categories[name], nil
}

func (m *MockCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	var categories []*models.Category
	for _, category := range m.Categories {
		if activeOnly && !category.IsActive {
			continue
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	Notifications map[string]*models.Notification
	CreateError   error
	clock         clock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		Notifications: make(map[string]*models.Notification),
	}
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = m.clock.next()
		notification.UpdatedAt = notification.CreatedAt
	}
	m.Notifications[notification.ID] = notification
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Notification, error) {
	var matched []*models.Notification
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			matched = append(matched, notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockNotificationRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, notification := range m.Notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	notification, exists := m.Notifications[id]
	if !exists || notification.UserID != userID {
		return nil, nil
	}
	notification.IsRead = true
	return notification, nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated := 0
	for _, notification := range m.Notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id string) error {
	if notification, exists := m.Notifications[id]; exists {
		notification.IsSent = true
	}
	return nil
}

func (m *MockNotificationRepository) DeleteAllByUser(ctx context.Context, userID string) (int, error) {
	removed := 0
	for id, notification := range m.Notifications {
		if notification.UserID == userID {
			delete(m.Notifications, id)
			removed++
		}
	}
	return removed, nil
}
