package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "movi/internal/db"
	"movi/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `trip_id, display_name, route_id, COALESCE(DATE_FORMAT(scheduled_date, '%Y-%m-%d'), '')`

// FindByText returns the first trip whose display name contains fragment,
// ignoring case. Ties go to the lowest trip_id. found is false on no match.
func (r TripRepository) FindByText(ctx context.Context, fragment string) (models.Trip, bool, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return models.Trip{}, false, nil
	}
	q, err := conn(nil, r.DB)
	if err != nil {
		return models.Trip{}, false, err
	}

	like := "%" + intdb.EscapeLike(strings.ToLower(fragment)) + "%"
	row := q.QueryRowContext(ctx, `
		SELECT `+tripColumns+`
		FROM daily_trips
		WHERE LOWER(display_name) LIKE ?
		ORDER BY trip_id ASC
		LIMIT 1
	`, like)

	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, false, nil
	}
	if err != nil {
		return models.Trip{}, false, err
	}
	return t, true, nil
}

// GetByID fetches one trip. found is false when the id does not exist.
func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, bool, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return models.Trip{}, false, err
	}
	row := q.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM daily_trips WHERE trip_id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, false, nil
	}
	if err != nil {
		return models.Trip{}, false, err
	}
	return t, true, nil
}

// DisplayNames lists every trip display name, ordered by trip_id.
func (r TripRepository) DisplayNames(ctx context.Context) ([]string, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT display_name FROM daily_trips ORDER BY trip_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return out, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ListForDate returns trips scheduled on date (YYYY-MM-DD) with their route
// name and deployment, if any.
func (r TripRepository) ListForDate(ctx context.Context, date string) ([]models.TripOverview, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT
			dt.trip_id,
			dt.display_name,
			dt.route_id,
			COALESCE(DATE_FORMAT(dt.scheduled_date, '%Y-%m-%d'), ''),
			COALESCE(r.route_display_name, ''),
			d.vehicle_id,
			d.driver_id
		FROM daily_trips dt
		LEFT JOIN routes r ON r.route_id = dt.route_id
		LEFT JOIN deployments d ON d.trip_id = dt.trip_id
		WHERE dt.scheduled_date = ?
		ORDER BY dt.trip_id ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripOverview{}
	for rows.Next() {
		var (
			rec       models.TripOverview
			routeID   sql.NullInt64
			vehicleID sql.NullInt64
			driverID  sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.DisplayName,
			&routeID,
			&rec.ScheduledDate,
			&rec.RouteDisplayName,
			&vehicleID,
			&driverID,
		); err != nil {
			return out, err
		}
		rec.RouteID = nullInt64Ptr(routeID)
		rec.VehicleID = nullInt64Ptr(vehicleID)
		rec.DriverID = nullInt64Ptr(driverID)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of trips. Used by the db-check endpoint.
func (r TripRepository) Count(ctx context.Context) (int, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return 0, err
	}
	var n int
	err = q.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_trips`).Scan(&n)
	return n, err
}

func scanTrip(row *sql.Row) (models.Trip, error) {
	var (
		t       models.Trip
		routeID sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.DisplayName, &routeID, &t.ScheduledDate); err != nil {
		return models.Trip{}, err
	}
	t.RouteID = nullInt64Ptr(routeID)
	return t, nil
}
