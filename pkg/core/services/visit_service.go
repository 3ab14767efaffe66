package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

type VisitService struct {
	repo ports.Repository
	now  func() time.Time
}

func NewVisitService(repo ports.Repository) *VisitService {
	return &VisitService{repo: repo, now: time.Now}
}

func (s *VisitService) RecordVisit(ctx context.Context, userID string, restaurantID int64, note string) (*domain.Visit, error) {
	r, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, domain.ErrNotFound)
	}

	visit := &domain.Visit{
		RestaurantID: restaurantID,
		UserID:       userID,
		Note:         strings.TrimSpace(note),
		VisitedAt:    s.now(),
	}
	if err := s.repo.RecordVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}
	return visit, nil
}

func (s *VisitService) ListVisits(ctx context.Context, userID string, page, limit int) ([]domain.Visit, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.repo.ListVisits(ctx, userID, limit, (page-1)*limit)
}

func (s *VisitService) Summary(ctx context.Context, userID string, restaurantID int64) (*domain.VisitSummary, error) {
	r, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, domain.ErrNotFound)
	}
	return s.repo.GetVisitSummary(ctx, restaurantID, userID)
}
