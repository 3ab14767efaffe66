package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
)

const listColumns = `id, slug, title, description, is_public, created_by, created_at, updated_at`

func scanList(s scanner) (*domain.List, error) {
	var l domain.List
	var title, description sql.NullString
	if err := s.Scan(&l.ID, &l.Slug, &title, &description, &l.IsPublic, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Title = title.String
	l.Description = description.String
	return &l, nil
}

func (r *SQLiteRepository) CreateList(ctx context.Context, list *domain.List) error {
	query := `INSERT INTO lists (slug, title, description, is_public, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, list.Slug, list.Title, list.Description, list.IsPublic, list.CreatedBy, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	list.ID = id
	return nil
}

func (r *SQLiteRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	list, err := scanList(r.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return list, err
}

func (r *SQLiteRepository) GetListBySlug(ctx context.Context, slug string) (*domain.List, error) {
	list, err := scanList(r.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists WHERE slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return list, err
}

func (r *SQLiteRepository) UpdateList(ctx context.Context, list *domain.List) error {
	query := `UPDATE lists SET slug = ?, title = ?, description = ?, is_public = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, list.Slug, list.Title, list.Description, list.IsPublic, list.UpdatedAt, list.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteList(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// foreign_keys is off by default in SQLite, so entries go explicitly
	if _, err := tx.ExecContext(ctx, `DELETE FROM list_restaurants WHERE list_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListLists(ctx context.Context, createdBy string, limit, offset int, search string) ([]domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE created_by = ?`
	args := []any{createdBy}

	if search != "" {
		query += ` AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`
		like := containsPattern(search)
		args = append(args, like, like)
	}

	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []domain.List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// AddRestaurantToList appends at the end of the list. Adding twice is a no-op.
func (r *SQLiteRepository) AddRestaurantToList(ctx context.Context, listID, restaurantID int64) error {
	query := `INSERT OR IGNORE INTO list_restaurants (list_id, restaurant_id, sort_order)
			  SELECT ?, ?, COALESCE(MAX(sort_order), 0) + 1 FROM list_restaurants WHERE list_id = ?`
	_, err := r.db.ExecContext(ctx, query, listID, restaurantID, listID)
	return err
}

func (r *SQLiteRepository) RemoveRestaurantFromList(ctx context.Context, listID, restaurantID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM list_restaurants WHERE list_id = ? AND restaurant_id = ?`, listID, restaurantID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ReorderRestaurants puts restaurantIDs first, in the given order, and keeps
// the entries it leaves out after them in their current relative order.
// Every id must already be on the list; nothing changes otherwise.
func (r *SQLiteRepository) ReorderRestaurants(ctx context.Context, listID int64, restaurantIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT restaurant_id FROM list_restaurants WHERE list_id = ? ORDER BY sort_order, restaurant_id`, listID)
	if err != nil {
		return err
	}
	var current []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current = append(current, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	placed := make(map[int64]bool, len(restaurantIDs))
	order := make([]int64, 0, len(current))
	for _, id := range restaurantIDs {
		if placed[id] {
			return fmt.Errorf("restaurant %d given twice: %w", id, domain.ErrInvalidInput)
		}
		placed[id] = true
		order = append(order, id)
	}
	for _, id := range current {
		if !placed[id] {
			order = append(order, id)
		}
	}

	query := `UPDATE list_restaurants SET sort_order = ? WHERE list_id = ? AND restaurant_id = ?`
	for i, id := range order {
		res, err := tx.ExecContext(ctx, query, i+1, listID, id)
		if err != nil {
			return err
		}
		if err := requireRow(res); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("restaurant %d is not on list %d: %w", id, listID, domain.ErrInvalidInput)
			}
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetListRestaurants(ctx context.Context, listID int64) ([]domain.Restaurant, error) {
	query := `SELECT r.id, r.name, r.description, r.location, r.address, r.latitude, r.longitude,
			  r.image_url, r.maps_url, r.price_per_person, r.tags, r.created_by, r.visits,
			  r.created_at, r.updated_at, r.deleted_at
			  FROM restaurants r
			  JOIN list_restaurants lr ON lr.restaurant_id = r.id
			  WHERE lr.list_id = ? AND r.deleted_at IS NULL
			  ORDER BY lr.sort_order ASC`

	rows, err := r.db.QueryContext(ctx, query, listID)
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
