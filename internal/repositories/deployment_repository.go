package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "movi/internal/db"
	"movi/internal/domain/models"
)

type DeploymentRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy of the repository that runs on tx.
func (r DeploymentRepository) WithTx(tx *sql.Tx) DeploymentRepository {
	r.tx = tx
	return r
}

// FindByTrip returns the deployment of a trip, or nil when the trip has
// none. Dirty data with several rows resolves to the lowest deployment_id.
func (r DeploymentRepository) FindByTrip(ctx context.Context, tripID int64) (*models.Deployment, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return nil, err
	}
	var d models.Deployment
	err = q.QueryRowContext(ctx, `
		SELECT deployment_id, trip_id, vehicle_id, driver_id
		FROM deployments
		WHERE trip_id=?
		ORDER BY deployment_id ASC
		LIMIT 1
	`, tripID).Scan(&d.ID, &d.TripID, &d.VehicleID, &d.DriverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a deployment and returns the number of rows removed
// (0 when the id is already gone).
func (r DeploymentRepository) Delete(ctx context.Context, deploymentID int64) (int64, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM deployments WHERE deployment_id=?`, deploymentID)
	if err != nil {
		return 0, err
	}
	return intdb.RowsAffected(res), nil
}

// List returns all deployments ordered by id.
func (r DeploymentRepository) List(ctx context.Context) ([]models.Deployment, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT deployment_id, trip_id, vehicle_id, driver_id FROM deployments ORDER BY deployment_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Deployment{}
	for rows.Next() {
		var d models.Deployment
		if err := rows.Scan(&d.ID, &d.TripID, &d.VehicleID, &d.DriverID); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a deployment. A duplicate trip surfaces as the driver's
// duplicate-key error; callers map it to a conflict.
func (r DeploymentRepository) Create(ctx context.Context, in models.DeploymentInput) (int64, error) {
	q, err := conn(r.tx, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`INSERT INTO deployments (trip_id, vehicle_id, driver_id) VALUES (?, ?, ?)`,
		in.TripID, in.VehicleID, in.DriverID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
