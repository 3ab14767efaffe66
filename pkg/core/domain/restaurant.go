package domain

import "time"

// Restaurant is a place a user added, optionally enriched from a Maps link
type Restaurant struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Address        string     `json:"address,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	MapsURL        string     `json:"maps_url,omitempty"`
	PricePerPerson *float64   `json:"price_per_person,omitempty"`
	Tags           []string   `json:"tags"` // Handled as JSON text in SQLite
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Visits         int64      `json:"visits,omitempty"` // Aggregated count
}

// RestaurantInput carries the user-supplied fields of a restaurant form
type RestaurantInput struct {
	Name           string   `json:"name" validate:"max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	Location       string   `json:"location" validate:"max=500"`
	MapsURL        string   `json:"maps_url" validate:"omitempty,url,max=2048"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url,max=2048"`
	PricePerPerson *float64 `json:"price_per_person" validate:"omitempty,gte=0"`
	Tags           []string `json:"tags" validate:"max=20,dive,max=50"`
}
