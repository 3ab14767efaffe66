package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

var (
	slugRe    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// slugify turns "Best Tapas, Lisbon" into "best-tapas-lisbon"
func slugify(title string) string {
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

type ListService struct {
	repo ports.Repository
	now  func() time.Time
}

func NewListService(repo ports.Repository) *ListService {
	return &ListService{repo: repo, now: time.Now}
}

func (s *ListService) CreateList(ctx context.Context, userID, title, slug, description string, public bool) (*domain.List, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = slugify(title)
	}
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("slug %q: %w", slug, domain.ErrInvalidInput)
	}

	// Check if slug exists
	existing, err := s.repo.GetListBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("slug %q: %w", slug, domain.ErrConflict)
	}

	now := s.now()
	list := &domain.List{
		Title:       strings.TrimSpace(title),
		Slug:        slug,
		Description: description,
		IsPublic:    public,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	return list, nil
}

// GetList returns a list with its restaurants. Private lists are only
// visible to their owner.
func (s *ListService) GetList(ctx context.Context, userID string, id int64) (*domain.List, error) {
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !list.IsPublic && list.CreatedBy != userID {
		return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
	}
	return s.withRestaurants(ctx, list)
}

func (s *ListService) GetPublicList(ctx context.Context, slug string) (*domain.List, error) {
	list, err := s.repo.GetListBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if list == nil || !list.IsPublic {
		return nil, fmt.Errorf("list %q: %w", slug, domain.ErrNotFound)
	}
	return s.withRestaurants(ctx, list)
}

func (s *ListService) UpdateList(ctx context.Context, userID string, id int64, title, slug, description string, public bool) (*domain.List, error) {
	list, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = list.Slug
	}
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("slug %q: %w", slug, domain.ErrInvalidInput)
	}

	// Check slug uniqueness if changed
	if slug != list.Slug {
		existing, err := s.repo.GetListBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("slug %q: %w", slug, domain.ErrConflict)
		}
	}

	list.Title = strings.TrimSpace(title)
	list.Slug = slug
	list.Description = description
	list.IsPublic = public
	list.UpdatedAt = s.now()

	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	return list, nil
}

func (s *ListService) DeleteList(ctx context.Context, userID string, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteList(ctx, id)
}

func (s *ListService) ListLists(ctx context.Context, userID string, page, limit int, search string) ([]domain.List, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListLists(ctx, userID, limit, offset, search)
}

func (s *ListService) AddRestaurant(ctx context.Context, userID string, listID, restaurantID int64) error {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	r, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("restaurant %d: %w", restaurantID, domain.ErrNotFound)
	}
	return s.repo.AddRestaurantToList(ctx, listID, restaurantID)
}

func (s *ListService) RemoveRestaurant(ctx context.Context, userID string, listID, restaurantID int64) error {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	return s.repo.RemoveRestaurantFromList(ctx, listID, restaurantID)
}

func (s *ListService) ReorderRestaurants(ctx context.Context, userID string, listID int64, restaurantIDs []int64) error {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	return s.repo.ReorderRestaurants(ctx, listID, restaurantIDs)
}

func (s *ListService) load(ctx context.Context, id int64) (*domain.List, error) {
	list, err := s.repo.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
	}
	return list, nil
}

func (s *ListService) owned(ctx context.Context, userID string, id int64) (*domain.List, error) {
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if list.CreatedBy != userID {
		return nil, fmt.Errorf("list %d: %w", id, domain.ErrForbidden)
	}
	return list, nil
}

func (s *ListService) withRestaurants(ctx context.Context, list *domain.List) (*domain.List, error) {
	restaurants, err := s.repo.GetListRestaurants(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Restaurants = restaurants
	return list, nil
}
