package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "movi/internal/config"
	"movi/internal/domain/models"
)

type PathRepository struct {
	DB *sql.DB
}

// List returns every path with its stops in travel order. A path without
// stops has an empty Stops slice.
func (r PathRepository) List(ctx context.Context) ([]models.Path, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT p.path_id, p.path_name, ps.stop_id, COALESCE(s.name, ''), ps.stop_order
		FROM paths p
		LEFT JOIN path_stops ps ON ps.path_id = p.path_id
		LEFT JOIN stops s ON s.stop_id = ps.stop_id
		ORDER BY p.path_id ASC, ps.stop_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Path{}
	for rows.Next() {
		var (
			pathID   int64
			pathName string
			stopID   sql.NullInt64
			stopName string
			order    sql.NullInt64
		)
		if err := rows.Scan(&pathID, &pathName, &stopID, &stopName, &order); err != nil {
			return out, err
		}
		if len(out) == 0 || out[len(out)-1].ID != pathID {
			out = append(out, models.Path{ID: pathID, Name: pathName, Stops: []models.PathStop{}})
		}
		if stopID.Valid {
			last := &out[len(out)-1]
			last.Stops = append(last.Stops, models.PathStop{StopID: stopID.Int64, Name: stopName, Order: int(order.Int64)})
		}
	}
	return out, rows.Err()
}

// Create inserts the path and its stops (order 1..n) in one transaction.
func (r PathRepository) Create(ctx context.Context, in models.PathInput) (int64, error) {
	db := r.DB
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		return 0, errNoDB
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create path: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO paths (path_name) VALUES (?)`, in.Name)
	if err != nil {
		return 0, err
	}
	pathID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for i, stopID := range in.StopIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO path_stops (path_id, stop_id, stop_order) VALUES (?, ?, ?)`,
			pathID, stopID, i+1,
		); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create path: commit: %w", err)
	}
	return pathID, nil
}
