package repositories

import (
	"context"
	"database/sql"

	"movi/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleSelect = `
	SELECT v.vehicle_id, v.license_plate, COALESCE(v.type, ''), COALESCE(v.capacity, 0)
	FROM vehicles v
`

// List returns all vehicles.
func (r VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	return r.query(ctx, vehicleSelect+` ORDER BY v.vehicle_id ASC`)
}

// ListUnassigned returns vehicles without a deployment on a trip scheduled
// for date (YYYY-MM-DD).
func (r VehicleRepository) ListUnassigned(ctx context.Context, date string) ([]models.Vehicle, error) {
	return r.query(ctx, vehicleSelect+`
		WHERE v.vehicle_id NOT IN (
			SELECT d.vehicle_id FROM deployments d
			JOIN daily_trips t ON t.trip_id = d.trip_id
			WHERE t.scheduled_date = ?
		)
		ORDER BY v.vehicle_id ASC
	`, date)
}

func (r VehicleRepository) query(ctx context.Context, query string, args ...any) ([]models.Vehicle, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.Type, &v.Capacity); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
