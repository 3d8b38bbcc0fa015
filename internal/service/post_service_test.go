package service

import (
	"context"
	"testing"

	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/mocks"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

type postFixture struct {
	service PostService
	posts   *mocks.MockPostRepository
	users   *mocks.MockUserRepository

	owner *models.User
	other *models.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	users := mocks.NewMockUserRepository()
	posts := mocks.NewMockPostRepository()
	categories := mocks.NewMockCategoryRepository()
	categories.Categories["electronics"] = &models.Category{ID: "cat-1", Name: "electronics", IsActive: true}
	categories.Categories["bags"] = &models.Category{ID: "cat-2", Name: "bags", IsActive: true}

	repos := &repository.Repositories{
		User:     users,
		Post:     posts,
		Category: categories,
	}

	f := &postFixture{
		service: newPostService(repos, zerolog.Nop()),
		posts:   posts,
		users:   users,
		owner:   &models.User{ID: "user-owner", FullName: "Olivia Owner", Username: "olivia", ProfileImage: "https://img.test/olivia.png"},
		other:   &models.User{ID: "user-other", FullName: "Oscar Other", Username: "oscar"},
	}
	users.Users[f.owner.ID] = f.owner
	users.Users[f.other.ID] = f.other
	return f
}

func validLostRequest() *models.CreatePostRequest {
	return &models.CreatePostRequest{
		Type:         models.PostTypeLost,
		ItemName:     "Blue backpack",
		Description:  "Lost near the station",
		Category:     "Bags",
		RewardAmount: 50,
	}
}

func TestCreatePost(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.service.Create(context.Background(), f.owner, validLostRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Status != models.PostStatusActive {
		t.Errorf("New post should be active, got %s", post.Status)
	}
	if post.Category != "bags" {
		t.Errorf("Category should be lowercased, got %q", post.Category)
	}
	if post.User.ID != f.owner.ID {
		t.Error("Owner profile should be attached")
	}
}

func TestCreatePost_Validation(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.CreatePostRequest)
	}{
		{"missing type", func(r *models.CreatePostRequest) { r.Type = "" }},
		{"bad type", func(r *models.CreatePostRequest) { r.Type = "stolen" }},
		{"missing item name", func(r *models.CreatePostRequest) { r.ItemName = "" }},
		{"lost without reward", func(r *models.CreatePostRequest) { r.RewardAmount = 0 }},
		{"unknown category", func(r *models.CreatePostRequest) { r.Category = "vehicles" }},
	}
	for _, tc := range cases {
		req := validLostRequest()
		tc.mutate(req)
		_, err := f.service.Create(ctx, f.owner, req)
		if code := errCode(t, err); code != apperr.CodeInvalidInput {
			t.Errorf("%s: expected invalid_input, got %s", tc.name, code)
		}
	}

	// Found posts need a location and at least one image
	found := &models.CreatePostRequest{
		Type:        models.PostTypeFound,
		ItemName:    "Phone",
		Description: "Found a phone",
		Category:    "electronics",
	}
	_, err := f.service.Create(ctx, f.owner, found)
	if code := errCode(t, err); code != apperr.CodeInvalidInput {
		t.Errorf("Expected invalid_input for found post without location, got %s", code)
	}
	found.LocationName = "Central Park"
	found.Images = []string{"https://img.test/phone.png"}
	if _, err := f.service.Create(ctx, f.owner, found); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Anonymous posting requires a username
	anonymous := validLostRequest()
	anonymous.IsAnonymous = true
	noUsername := &models.User{ID: "user-nameless", FullName: "No Name"}
	f.users.Users[noUsername.ID] = noUsername
	_, err = f.service.Create(ctx, noUsername, anonymous)
	if code := errCode(t, err); code != apperr.CodeInvalidInput {
		t.Errorf("Expected invalid_input for anonymous post without username, got %s", code)
	}
}

func TestCreatePost_AnonymousOwnerMasked(t *testing.T) {
	f := newPostFixture(t)

	req := validLostRequest()
	req.IsAnonymous = true
	post, err := f.service.Create(context.Background(), f.owner, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.User.ID != "" {
		t.Error("Anonymous owner must not expose a user ID")
	}
	if post.User.ProfileImage != AnonymousAvatarURL {
		t.Error("Anonymous owner should carry the anonymous avatar")
	}

	// And the same holds on read
	fetched, err := f.service.GetByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.User.ID != "" || fetched.User.FullName != f.owner.Username {
		t.Errorf("Fetched anonymous post leaks identity: %+v", fetched.User)
	}
}

func TestUpdatePost_OwnerOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.owner, validLostRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	description := "Updated description"
	_, err = f.service.Update(ctx, f.other, post.ID, &models.UpdatePostRequest{Description: &description})
	if code := errCode(t, err); code != apperr.CodeForbidden {
		t.Errorf("Expected forbidden, got %s", code)
	}

	updated, err := f.service.Update(ctx, f.owner, post.ID, &models.UpdatePostRequest{Description: &description})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != description {
		t.Errorf("Description not applied: %q", updated.Description)
	}
	// Fields not in the request stay as they were
	if updated.ItemName != "Blue backpack" || updated.RewardAmount != 50 {
		t.Error("Partial update must not clear other fields")
	}
}

func TestUpdatePostStatus(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.owner, validLostRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = f.service.UpdateStatus(ctx, f.owner, post.ID, "resolved")
	if code := errCode(t, err); code != apperr.CodeInvalidInput {
		t.Errorf("Expected invalid_input for bad status, got %s", code)
	}

	updated, err := f.service.UpdateStatus(ctx, f.owner, post.ID, models.PostStatusReturned)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.PostStatusReturned {
		t.Errorf("Expected returned, got %s", updated.Status)
	}
}

func TestListPosts(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	if _, err := f.service.Create(ctx, f.owner, validLostRequest()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	found := &models.CreatePostRequest{
		Type:         models.PostTypeFound,
		ItemName:     "Phone",
		Description:  "Found a phone",
		Category:     "electronics",
		LocationName: "Central Park",
		Images:       []string{"https://img.test/phone.png"},
	}
	if _, err := f.service.Create(ctx, f.other, found); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, pagination, err := f.service.List(ctx, &models.PostFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || pagination.Total != 2 {
		t.Errorf("Expected 2 posts, got %d (total %d)", len(all), pagination.Total)
	}
	// Newest first
	if all[0].ItemName != "Phone" {
		t.Error("Posts should be ordered newest first")
	}

	lostOnly, _, err := f.service.List(ctx, &models.PostFilter{Type: models.PostTypeLost}, 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lostOnly) != 1 || lostOnly[0].Type != models.PostTypeLost {
		t.Errorf("Type filter failed: %d posts", len(lostOnly))
	}

	mine, _, err := f.service.List(ctx, &models.PostFilter{UserID: f.owner.ID}, 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != f.owner.ID {
		t.Errorf("Owner filter failed: %d posts", len(mine))
	}
}

func TestDeletePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.owner, validLostRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = f.service.Delete(ctx, f.other, post.ID)
	if code := errCode(t, err); code != apperr.CodeForbidden {
		t.Errorf("Expected forbidden, got %s", code)
	}

	if err := f.service.Delete(ctx, f.owner, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = f.service.GetByID(ctx, post.ID)
	if code := errCode(t, err); code != apperr.CodeNotFound {
		t.Errorf("Expected not_found after delete, got %s", code)
	}
}
