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

func newSavedPostFixture(t *testing.T) (SavedPostService, *models.User, *models.Post, *mocks.MockPostRepository) {
	t.Helper()

	users := mocks.NewMockUserRepository()
	posts := mocks.NewMockPostRepository()
	saved := mocks.NewMockSavedPostRepository()

	owner := &models.User{ID: "user-owner", FullName: "Olivia Owner", Username: "olivia"}
	reader := &models.User{ID: "user-reader", FullName: "Rhea Reader", Username: "rhea"}
	users.Users[owner.ID] = owner
	users.Users[reader.ID] = reader

	post := &models.Post{ID: "post-1", UserID: owner.ID, ItemName: "Blue backpack", Status: models.PostStatusActive}
	posts.Create(context.Background(), post)

	repos := &repository.Repositories{User: users, Post: posts, SavedPost: saved}
	return newSavedPostService(repos, zerolog.Nop()), reader, post, posts
}

func TestSavedPosts(t *testing.T) {
	svc, reader, post, _ := newSavedPostFixture(t)
	ctx := context.Background()

	isSaved, err := svc.IsSaved(ctx, reader, post.ID)
	if err != nil || isSaved {
		t.Fatalf("Expected not saved, got %v (err %v)", isSaved, err)
	}

	if _, err := svc.Save(ctx, reader, post.ID); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Saving twice conflicts
	_, err = svc.Save(ctx, reader, post.ID)
	if code := errCode(t, err); code != apperr.CodeConflict {
		t.Errorf("Expected conflict, got %s", code)
	}

	isSaved, _ = svc.IsSaved(ctx, reader, post.ID)
	if !isSaved {
		t.Error("Post should be saved now")
	}

	views, pagination, err := svc.ListMine(ctx, reader, 1, 10)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(views) != 1 || pagination.Total != 1 {
		t.Fatalf("Expected 1 saved post, got %d", len(views))
	}
	if views[0].Post == nil || views[0].Post.ItemName != "Blue backpack" {
		t.Error("Saved post view should carry the post")
	}

	if err := svc.Unsave(ctx, reader, post.ID); err != nil {
		t.Fatalf("Unsave failed: %v", err)
	}
	err = svc.Unsave(ctx, reader, post.ID)
	if code := errCode(t, err); code != apperr.CodeNotFound {
		t.Errorf("Expected not_found for double unsave, got %s", code)
	}
}

func TestSavedPosts_MissingPost(t *testing.T) {
	svc, reader, post, posts := newSavedPostFixture(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, reader, "no-such-post")
	if code := errCode(t, err); code != apperr.CodeNotFound {
		t.Errorf("Expected not_found, got %s", code)
	}

	// A bookmark whose post has since been deleted is skipped in listings
	if _, err := svc.Save(ctx, reader, post.ID); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	posts.Delete(ctx, post.ID)

	views, _, err := svc.ListMine(ctx, reader, 1, 10)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("Expected orphaned bookmark to be skipped, got %d views", len(views))
	}
}
