package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens dbURL and applies migrations. libsql:// and
// wss:// URLs go through the Turso driver, anything else through modernc.
func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.HasPrefix(dbURL, "libsql://") || strings.HasPrefix(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS restaurants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		location TEXT,
		address TEXT,
		latitude REAL,
		longitude REAL,
		image_url TEXT,
		maps_url TEXT,
		price_per_person REAL,
		tags JSON,
		created_by TEXT NOT NULL,
		visits INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		deleted_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_restaurants_created_by ON restaurants(created_by);

	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		note TEXT,
		visited_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(restaurant_id) REFERENCES restaurants(id)
	);
	CREATE INDEX IF NOT EXISTS idx_visits_restaurant_id ON visits(restaurant_id);
	CREATE INDEX IF NOT EXISTS idx_visits_user_id ON visits(user_id);

	CREATE TABLE IF NOT EXISTS lists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		title TEXT,
		description TEXT,
		is_public INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_lists_slug ON lists(slug);

	CREATE TABLE IF NOT EXISTS list_restaurants (
		list_id INTEGER NOT NULL,
		restaurant_id INTEGER NOT NULL,
		sort_order INTEGER DEFAULT 0,
		PRIMARY KEY (list_id, restaurant_id),
		FOREIGN KEY(list_id) REFERENCES lists(id) ON DELETE CASCADE,
		FOREIGN KEY(restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(query)
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
