package sqlite

import (
	"context"
	"database/sql"

	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
)

func (r *SQLiteRepository) RecordVisit(ctx context.Context, visit *domain.Visit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert Visit Record
	res, err := tx.ExecContext(ctx, `INSERT INTO visits (restaurant_id, user_id, note, visited_at) VALUES (?, ?, ?, ?)`,
		visit.RestaurantID, visit.UserID, visit.Note, visit.VisitedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	// 2. Increment Restaurant Visit Counter (Atomic)
	if _, err := tx.ExecContext(ctx, `UPDATE restaurants SET visits = visits + 1 WHERE id = ?`, visit.RestaurantID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	visit.ID = id
	return nil
}

func (r *SQLiteRepository) ListVisits(ctx context.Context, userID string, limit, offset int) ([]domain.Visit, error) {
	query := `SELECT id, restaurant_id, user_id, note, visited_at FROM visits
			  WHERE user_id = ? ORDER BY visited_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *SQLiteRepository) GetVisitSummary(ctx context.Context, restaurantID int64, userID string) (*domain.VisitSummary, error) {
	summary := &domain.VisitSummary{RestaurantID: restaurantID}

	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits WHERE restaurant_id = ?`, restaurantID).Scan(&summary.TotalVisits)
	if err != nil {
		return nil, err
	}

	var last sql.NullTime
	err = r.db.QueryRowContext(ctx, `SELECT visited_at FROM visits WHERE restaurant_id = ? AND user_id = ?
			  ORDER BY visited_at DESC LIMIT 1`, restaurantID, userID).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if last.Valid {
		summary.Visited = true
		summary.LastVisitAt = &last.Time
	}
	return summary, nil
}

func scanVisit(s scanner) (domain.Visit, error) {
	var v domain.Visit
	var note sql.NullString
	err := s.Scan(&v.ID, &v.RestaurantID, &v.UserID, &note, &v.VisitedAt)
	v.Note = note.String
	return v, err
}
