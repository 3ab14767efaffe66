package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/links"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

type RestaurantService struct {
	repo ports.Repository
	now  func() time.Time
}

func NewRestaurantService(repo ports.Repository) *RestaurantService {
	return &RestaurantService{repo: repo, now: time.Now}
}

func (s *RestaurantService) Create(ctx context.Context, userID string, in domain.RestaurantInput) (*domain.Restaurant, error) {
	r := &domain.Restaurant{CreatedBy: userID}
	if err := s.apply(r, in); err != nil {
		return nil, err
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt

	if err := s.repo.CreateRestaurant(ctx, r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return r, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	r, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("restaurant %d: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

func (s *RestaurantService) Update(ctx context.Context, userID string, id int64, in domain.RestaurantInput) (*domain.Restaurant, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CreatedBy != userID {
		return nil, fmt.Errorf("restaurant %d: %w", id, domain.ErrForbidden)
	}

	if mapsURL := strings.TrimSpace(in.MapsURL); mapsURL != "" && mapsURL != r.MapsURL {
		clearPlace(r, links.ExtractGoogleMapsData(r.MapsURL))
	}
	if err := s.apply(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now()

	if err := s.repo.UpdateRestaurant(ctx, r); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	return r, nil
}

func (s *RestaurantService) Delete(ctx context.Context, userID string, id int64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.CreatedBy != userID {
		return fmt.Errorf("restaurant %d: %w", id, domain.ErrForbidden)
	}
	return s.repo.DeleteRestaurant(ctx, id)
}

func (s *RestaurantService) List(ctx context.Context, page, limit int, filter ports.RestaurantFilter) ([]domain.Restaurant, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	restaurants, err := s.repo.ListRestaurants(ctx, limit, offset, filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.CountRestaurants(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return restaurants, count, nil
}

// PreviewLinks normalizes pasted links without storing anything
func (s *RestaurantService) PreviewLinks(mapsURL, imageURL string) links.Normalized {
	return links.Normalize(strings.TrimSpace(mapsURL), strings.TrimSpace(imageURL))
}

// apply copies the form onto r, filling blanks from the maps link and
// rewriting imgur share links into direct image links.
func (s *RestaurantService) apply(r *domain.Restaurant, in domain.RestaurantInput) error {
	if name := strings.TrimSpace(in.Name); name != "" {
		r.Name = name
	}
	if in.Description != "" {
		r.Description = strings.TrimSpace(in.Description)
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		r.Location = loc
	}
	if in.PricePerPerson != nil {
		r.PricePerPerson = in.PricePerPerson
	}
	if in.Tags != nil {
		r.Tags = normalizeTags(in.Tags)
	}

	if mapsURL := strings.TrimSpace(in.MapsURL); mapsURL != "" {
		if !links.IsValidGoogleMapsURL(mapsURL) {
			return fmt.Errorf("maps_url is not a Google Maps link: %w", domain.ErrInvalidInput)
		}
		applyPlace(r, links.ExtractGoogleMapsData(mapsURL))
		r.MapsURL = mapsURL
	}

	if imageURL := strings.TrimSpace(in.ImageURL); imageURL != "" {
		if links.IsValidImgurURL(imageURL) {
			imageURL = links.ConvertImgurURL(imageURL)
		}
		r.ImageURL = imageURL
	}

	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return fmt.Errorf("latitude %v out of range: %w", *r.Latitude, domain.ErrInvalidInput)
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return fmt.Errorf("longitude %v out of range: %w", *r.Longitude, domain.ErrInvalidInput)
	}
	return nil
}

// applyPlace fills blank text fields from a maps link. Coordinates always
// follow the link.
func applyPlace(r *domain.Restaurant, p links.PlaceExtraction) {
	if p.Name != nil && r.Name == "" {
		r.Name = *p.Name
	}
	if p.Address != nil && r.Address == "" {
		r.Address = *p.Address
	}
	if p.Location != nil && r.Location == "" {
		r.Location = *p.Location
	}
	if p.HasCoordinates() {
		r.Latitude = p.Latitude
		r.Longitude = p.Longitude
	}
}

// clearPlace drops what an old maps link filled in so the new link can
// refill it. Location and address the user typed differently are kept, and
// so is the name.
func clearPlace(r *domain.Restaurant, old links.PlaceExtraction) {
	if old.Location != nil && r.Location == *old.Location {
		r.Location = ""
	}
	if old.Address != nil && r.Address == *old.Address {
		r.Address = ""
	}
	r.Latitude, r.Longitude = nil, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
