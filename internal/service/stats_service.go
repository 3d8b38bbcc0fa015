package service

import (
	"context"

	"github.com/lost-and-found-api/internal/repository"
)

// statsService exposes entity counts for the metrics endpoint
type statsService struct {
	repos *repository.Repositories
}

// newStatsService creates a new StatsService
func newStatsService(repos *repository.Repositories) StatsService {
	return &statsService{repos: repos}
}

// Counts returns the current row counts of the main entities
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	users, err := s.repos.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.repos.Post.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.repos.Comment.Count(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := s.repos.Claim.Count(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]int{
		"users":    users,
		"posts":    posts,
		"comments": comments,
		"claims":   claims,
	}, nil
}
