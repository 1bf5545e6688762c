package repositories

import (
	"context"
	"database/sql"

	intdb "movi/internal/db"
	"movi/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

// List returns all routes, deactivated ones included, with their path name.
func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT r.route_id, r.path_id, COALESCE(p.path_name, ''), r.route_display_name,
			COALESCE(r.shift_time, ''), COALESCE(r.direction, ''),
			COALESCE(r.start_point, ''), COALESCE(r.end_point, ''), r.status
		FROM routes r
		LEFT JOIN paths p ON p.path_id = r.path_id
		ORDER BY r.route_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var (
			rt     models.Route
			pathID sql.NullInt64
		)
		if err := rows.Scan(&rt.ID, &pathID, &rt.PathName, &rt.DisplayName,
			&rt.ShiftTime, &rt.Direction, &rt.StartPoint, &rt.EndPoint, &rt.Status); err != nil {
			return out, err
		}
		rt.PathID = nullInt64Ptr(pathID)
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Create inserts an active route.
func (r RouteRepository) Create(ctx context.Context, in models.RouteInput) (int64, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO routes (path_id, route_display_name, shift_time, direction, start_point, end_point, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.PathID, in.DisplayName, in.ShiftTime, in.Direction, in.StartPoint, in.EndPoint, models.RouteActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Deactivate marks a route deactivated and returns the rows changed; an
// already deactivated or missing route changes 0.
func (r RouteRepository) Deactivate(ctx context.Context, routeID int64) (int64, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`UPDATE routes SET status=? WHERE route_id=? AND status<>?`,
		models.RouteDeactivated, routeID, models.RouteDeactivated,
	)
	if err != nil {
		return 0, err
	}
	return intdb.RowsAffected(res), nil
}
