package ports

import (
	"context"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/links"
)

// RestaurantFilter narrows List and Count queries
type RestaurantFilter struct {
	Search    string
	Tag       string
	CreatedBy string
}

// Repository defines storage operations for restaurants, lists and visits
type Repository interface {
	CreateRestaurant(ctx context.Context, r *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int64) error // Soft delete
	ListRestaurants(ctx context.Context, limit, offset int, filter RestaurantFilter) ([]domain.Restaurant, error)
	CountRestaurants(ctx context.Context, filter RestaurantFilter) (int64, error)

	// Visits
	RecordVisit(ctx context.Context, visit *domain.Visit) error
	ListVisits(ctx context.Context, userID string, limit, offset int) ([]domain.Visit, error)
	GetVisitSummary(ctx context.Context, restaurantID int64, userID string) (*domain.VisitSummary, error)

	// Lists
	CreateList(ctx context.Context, list *domain.List) error
	GetList(ctx context.Context, id int64) (*domain.List, error)
	GetListBySlug(ctx context.Context, slug string) (*domain.List, error)
	UpdateList(ctx context.Context, list *domain.List) error
	DeleteList(ctx context.Context, id int64) error
	ListLists(ctx context.Context, createdBy string, limit, offset int, search string) ([]domain.List, error)
	AddRestaurantToList(ctx context.Context, listID, restaurantID int64) error
	RemoveRestaurantFromList(ctx context.Context, listID, restaurantID int64) error
	ReorderRestaurants(ctx context.Context, listID int64, restaurantIDs []int64) error
	GetListRestaurants(ctx context.Context, listID int64) ([]domain.Restaurant, error)

	// Migration
	Dump(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context, snapshot *Snapshot) (*RestoreResult, error)
}

// Snapshot is the export format of the CLI
type Snapshot struct {
	Restaurants []domain.Restaurant     `json:"restaurants"`
	Lists       []domain.List           `json:"lists"`
	Entries     []domain.ListRestaurant `json:"entries"`
	Visits      []domain.Visit          `json:"visits"`
}

// RestoreResult counts what a Restore wrote and what it left out
type RestoreResult struct {
	Inserted int
	Skipped  int
}

// RestaurantService defines the business logic for restaurants
type RestaurantService interface {
	Create(ctx context.Context, userID string, in domain.RestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id int64) (*domain.Restaurant, error)
	Update(ctx context.Context, userID string, id int64, in domain.RestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, userID string, id int64) error
	List(ctx context.Context, page, limit int, filter RestaurantFilter) ([]domain.Restaurant, int64, error)
	PreviewLinks(mapsURL, imageURL string) links.Normalized
}

// ListService defines business logic for restaurant lists
type ListService interface {
	CreateList(ctx context.Context, userID, title, slug, description string, public bool) (*domain.List, error)
	GetList(ctx context.Context, userID string, id int64) (*domain.List, error)
	GetPublicList(ctx context.Context, slug string) (*domain.List, error)
	UpdateList(ctx context.Context, userID string, id int64, title, slug, description string, public bool) (*domain.List, error)
	DeleteList(ctx context.Context, userID string, id int64) error
	ListLists(ctx context.Context, userID string, page, limit int, search string) ([]domain.List, error)
	AddRestaurant(ctx context.Context, userID string, listID, restaurantID int64) error
	RemoveRestaurant(ctx context.Context, userID string, listID, restaurantID int64) error
	ReorderRestaurants(ctx context.Context, userID string, listID int64, restaurantIDs []int64) error
}

// VisitService defines business logic for visit tracking
type VisitService interface {
	RecordVisit(ctx context.Context, userID string, restaurantID int64, note string) (*domain.Visit, error)
	ListVisits(ctx context.Context, userID string, page, limit int) ([]domain.Visit, error)
	Summary(ctx context.Context, userID string, restaurantID int64) (*domain.VisitSummary, error)
}
