package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          zerolog.Logger
}

// newCategoryService creates a new CategoryService
func newCategoryService(categoryRepo repository.CategoryRepository, log zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log.With().Str("service", "category").Logger(),
	}
}

// Create adds a category. Admin only; names are stored lowercase.
func (s *categoryService) Create(ctx context.Context, requester *models.User, req *models.CreateCategoryRequest) (*models.Category, error) {
	if !requester.IsAdmin() {
		return nil, apperr.Forbidden("only administrators can create categories")
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, apperr.InvalidInput("category name is required")
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("category %q already exists", name)
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Str("category", name).Msg("Category created")
	return category, nil
}

// List returns categories, optionally only active ones
func (s *categoryService) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}
