package domain

import "time"

// Visit records a user having eaten at a restaurant
type Visit struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	Note         string    `json:"note,omitempty"`
	VisitedAt    time.Time `json:"visited_at"`
}

// VisitSummary aggregates visits of one restaurant
type VisitSummary struct {
	RestaurantID int64      `json:"restaurant_id"`
	TotalVisits  int64      `json:"total_visits"`
	Visited      bool       `json:"visited"` // by the requesting user
	LastVisitAt  *time.Time `json:"last_visit_at,omitempty"`
}
