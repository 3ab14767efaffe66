package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

const restaurantColumns = `id, name, description, location, address, latitude, longitude,
	image_url, maps_url, price_per_person, tags, created_by, visits, created_at, updated_at, deleted_at`

func scanRestaurant(s scanner) (*domain.Restaurant, error) {
	var (
		rest                    domain.Restaurant
		description, location   sql.NullString
		address, image, mapsURL sql.NullString
		lat, lng, price         sql.NullFloat64
		tagsJSON                []byte
		deletedAt               sql.NullTime
	)
	err := s.Scan(
		&rest.ID, &rest.Name, &description, &location, &address, &lat, &lng,
		&image, &mapsURL, &price, &tagsJSON, &rest.CreatedBy, &rest.Visits,
		&rest.CreatedAt, &rest.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	rest.Description = description.String
	rest.Location = location.String
	rest.Address = address.String
	rest.ImageURL = image.String
	rest.MapsURL = mapsURL.String
	rest.Latitude = floatPtr(lat)
	rest.Longitude = floatPtr(lng)
	rest.PricePerPerson = floatPtr(price)
	if deletedAt.Valid {
		rest.DeletedAt = &deletedAt.Time
	}
	_ = json.Unmarshal(tagsJSON, &rest.Tags)
	return &rest, nil
}

func (r *SQLiteRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	query := `INSERT INTO restaurants (name, description, location, address, latitude, longitude,
			  image_url, maps_url, price_per_person, tags, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tagsJSON, err := json.Marshal(rest.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query,
		rest.Name, rest.Description, rest.Location, rest.Address,
		nullFloat(rest.Latitude), nullFloat(rest.Longitude),
		rest.ImageURL, rest.MapsURL, nullFloat(rest.PricePerPerson), string(tagsJSON),
		rest.CreatedBy, rest.CreatedAt, rest.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = id
	return nil
}

func (r *SQLiteRepository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ? AND deleted_at IS NULL`

	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rest, err
}

func (r *SQLiteRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	query := `UPDATE restaurants SET name = ?, description = ?, location = ?, address = ?,
			  latitude = ?, longitude = ?, image_url = ?, maps_url = ?, price_per_person = ?,
			  tags = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`

	tagsJSON, err := json.Marshal(rest.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query,
		rest.Name, rest.Description, rest.Location, rest.Address,
		nullFloat(rest.Latitude), nullFloat(rest.Longitude),
		rest.ImageURL, rest.MapsURL, nullFloat(rest.PricePerPerson), string(tagsJSON),
		rest.UpdatedAt, rest.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteRestaurant(ctx context.Context, id int64) error {
	query := `UPDATE restaurants SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func restaurantWhere(filter ports.RestaurantFilter) (string, []any) {
	where := ` WHERE deleted_at IS NULL`
	args := []any{}

	if filter.Search != "" {
		where += ` AND (name LIKE ? ESCAPE '\' OR location LIKE ? ESCAPE '\' OR address LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`
		like := containsPattern(filter.Search)
		args = append(args, like, like, like, like)
	}
	if filter.Tag != "" {
		where += " AND EXISTS (SELECT 1 FROM json_each(restaurants.tags) WHERE value = ?)"
		args = append(args, filter.Tag)
	}
	if filter.CreatedBy != "" {
		where += " AND created_by = ?"
		args = append(args, filter.CreatedBy)
	}
	return where, args
}

func (r *SQLiteRepository) ListRestaurants(ctx context.Context, limit, offset int, filter ports.RestaurantFilter) ([]domain.Restaurant, error) {
	where, args := restaurantWhere(filter)
	query := `SELECT ` + restaurantColumns + ` FROM restaurants` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *SQLiteRepository) CountRestaurants(ctx context.Context, filter ports.RestaurantFilter) (int64, error) {
	where, args := restaurantWhere(filter)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`+where, args...).Scan(&count)
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term literally, for use
// with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
