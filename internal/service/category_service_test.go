package service

import (
	"context"
	"testing"

	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/mocks"
	"github.com/lost-and-found-api/internal/models"
	"github.com/rs/zerolog"
)

func TestCreateCategory(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	svc := newCategoryService(repo, zerolog.Nop())
	admin := &models.User{ID: "user-admin", Role: models.RoleAdmin}
	regular := &models.User{ID: "user-regular", Role: models.RoleUser}
	ctx := context.Background()

	_, err := svc.Create(ctx, regular, &models.CreateCategoryRequest{Name: "Pets"})
	if code := errCode(t, err); code != apperr.CodeForbidden {
		t.Errorf("Expected forbidden for non-admin, got %s", code)
	}

	category, err := svc.Create(ctx, admin, &models.CreateCategoryRequest{Name: "  Pets "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if category.Name != "pets" {
		t.Errorf("Name should be trimmed and lowercased, got %q", category.Name)
	}
	if !category.IsActive {
		t.Error("New category should be active")
	}

	_, err = svc.Create(ctx, admin, &models.CreateCategoryRequest{Name: "PETS"})
	if code := errCode(t, err); code != apperr.CodeConflict {
		t.Errorf("Expected conflict for duplicate, got %s", code)
	}

	_, err = svc.Create(ctx, admin, &models.CreateCategoryRequest{Name: "   "})
	if code := errCode(t, err); code != apperr.CodeInvalidInput {
		t.Errorf("Expected invalid_input for blank name, got %s", code)
	}
}

func TestListCategories(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	repo.Categories["bags"] = &models.Category{ID: "c1", Name: "bags", IsActive: true}
	repo.Categories["retired"] = &models.Category{ID: "c2", Name: "retired", IsActive: false}
	svc := newCategoryService(repo, zerolog.Nop())
	ctx := context.Background()

	active, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].Name != "bags" {
		t.Errorf("Expected only active categories, got %d", len(active))
	}

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(all))
	}
}
