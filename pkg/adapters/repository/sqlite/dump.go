package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

// Dump returns every row, soft-deleted restaurants included. Used for migration.
func (r *SQLiteRepository) Dump(ctx context.Context) (*ports.Snapshot, error) {
	snap := &ports.Snapshot{
		Restaurants: []domain.Restaurant{},
		Lists:       []domain.List{},
		Entries:     []domain.ListRestaurant{},
		Visits:      []domain.Visit{},
	}

	err := r.each(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`, func(rows *sql.Rows) error {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return err
		}
		snap.Restaurants = append(snap.Restaurants, *rest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx, `SELECT `+listColumns+` FROM lists ORDER BY id`, func(rows *sql.Rows) error {
		l, err := scanList(rows)
		if err != nil {
			return err
		}
		snap.Lists = append(snap.Lists, *l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx, `SELECT list_id, restaurant_id, sort_order FROM list_restaurants ORDER BY list_id, sort_order`, func(rows *sql.Rows) error {
		var e domain.ListRestaurant
		if err := rows.Scan(&e.ListID, &e.RestaurantID, &e.SortOrder); err != nil {
			return err
		}
		snap.Entries = append(snap.Entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx, `SELECT id, restaurant_id, user_id, note, visited_at FROM visits ORDER BY id`, func(rows *sql.Rows) error {
		v, err := scanVisit(rows)
		if err != nil {
			return err
		}
		snap.Visits = append(snap.Visits, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// Restore inserts a snapshot keeping its ids. Rows whose id (or list slug)
// already exists are skipped, and so are entries and visits whose restaurant
// or list was skipped, so they never attach to someone else's row.
func (r *SQLiteRepository) Restore(ctx context.Context, snap *ports.Snapshot) (*ports.RestoreResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &ports.RestoreResult{}
	exec := func(query string, args ...any) (bool, error) {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		if n == 0 {
			result.Skipped++
			return false, nil
		}
		result.Inserted += int(n)
		return true, nil
	}

	restaurants := make(map[int64]bool, len(snap.Restaurants))
	for _, rest := range snap.Restaurants {
		tagsJSON, err := json.Marshal(rest.Tags)
		if err != nil {
			return nil, err
		}
		var deletedAt sql.NullTime
		if rest.DeletedAt != nil {
			deletedAt = sql.NullTime{Time: *rest.DeletedAt, Valid: true}
		}
		ok, err := exec(`INSERT OR IGNORE INTO restaurants (id, name, description, location, address, latitude, longitude,
			  image_url, maps_url, price_per_person, tags, created_by, visits, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rest.ID, rest.Name, rest.Description, rest.Location, rest.Address,
			nullFloat(rest.Latitude), nullFloat(rest.Longitude), rest.ImageURL, rest.MapsURL,
			nullFloat(rest.PricePerPerson), string(tagsJSON), rest.CreatedBy, rest.Visits,
			rest.CreatedAt, rest.UpdatedAt, deletedAt)
		if err != nil {
			return nil, err
		}
		restaurants[rest.ID] = ok
	}

	lists := make(map[int64]bool, len(snap.Lists))
	for _, l := range snap.Lists {
		ok, err := exec(`INSERT OR IGNORE INTO lists (id, slug, title, description, is_public, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Slug, l.Title, l.Description, l.IsPublic, l.CreatedBy, l.CreatedAt, l.UpdatedAt)
		if err != nil {
			return nil, err
		}
		lists[l.ID] = ok
	}

	for _, e := range snap.Entries {
		if !lists[e.ListID] || !restaurants[e.RestaurantID] {
			result.Skipped++
			continue
		}
		_, err := exec(`INSERT OR IGNORE INTO list_restaurants (list_id, restaurant_id, sort_order) VALUES (?, ?, ?)`,
			e.ListID, e.RestaurantID, e.SortOrder)
		if err != nil {
			return nil, err
		}
	}

	for _, v := range snap.Visits {
		if !restaurants[v.RestaurantID] {
			result.Skipped++
			continue
		}
		_, err := exec(`INSERT OR IGNORE INTO visits (id, restaurant_id, user_id, note, visited_at) VALUES (?, ?, ?, ?, ?)`,
			v.ID, v.RestaurantID, v.UserID, v.Note, v.VisitedAt)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) each(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
