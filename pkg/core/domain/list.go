package domain

import "time"

// List represents a shareable, ordered group of restaurants
type List struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	IsPublic    bool         `json:"is_public"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Restaurants []Restaurant `json:"restaurants,omitempty"` // Populated when fetching full list details
}

// ListRestaurant represents the many-to-many relationship with ordering
type ListRestaurant struct {
	ListID       int64 `json:"list_id"`
	RestaurantID int64 `json:"restaurant_id"`
	SortOrder    int   `json:"sort_order"`
}
