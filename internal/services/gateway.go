package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "movi/internal/config"
	"movi/internal/domain/models"
	"movi/internal/repositories"
)

// FleetGateway is the narrow set of store operations the agent needs.
// Every mutation is idempotent: repeating it changes 0 rows.
type FleetGateway interface {
	CountConfirmedBookings(ctx context.Context, tripID int64) (int, error)
	FindDeployment(ctx context.Context, tripID int64) (*models.Deployment, error)
	CancelConfirmedBookings(ctx context.Context, tripID int64) (int64, error)
	DeleteDeployment(ctx context.Context, deploymentID int64) (int64, error)
	// RemoveVehicle deletes the deployment and cancels the trip's confirmed
	// bookings as one unit: both happen or neither does.
	RemoveVehicle(ctx context.Context, tripID, deploymentID int64) (deleted, cancelled int64, err error)
}

// Gateway implements FleetGateway on MySQL.
type Gateway struct {
	DB          *sql.DB
	Bookings    repositories.BookingRepository
	Deployments repositories.DeploymentRepository
}

func (g Gateway) db() *sql.DB {
	if g.DB != nil {
		return g.DB
	}
	return intconfig.DB
}

func (g Gateway) bookings() repositories.BookingRepository {
	if g.Bookings.DB != nil {
		return g.Bookings
	}
	return repositories.BookingRepository{DB: g.db()}
}

func (g Gateway) deployments() repositories.DeploymentRepository {
	if g.Deployments.DB != nil {
		return g.Deployments
	}
	return repositories.DeploymentRepository{DB: g.db()}
}

func (g Gateway) CountConfirmedBookings(ctx context.Context, tripID int64) (int, error) {
	n, err := g.bookings().CountConfirmed(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("count bookings trip=%d: %w", tripID, err)
	}
	return n, nil
}

func (g Gateway) FindDeployment(ctx context.Context, tripID int64) (*models.Deployment, error) {
	d, err := g.deployments().FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("find deployment trip=%d: %w", tripID, err)
	}
	return d, nil
}

func (g Gateway) CancelConfirmedBookings(ctx context.Context, tripID int64) (int64, error) {
	n, err := g.bookings().CancelConfirmed(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("cancel bookings trip=%d: %w", tripID, err)
	}
	return n, nil
}

func (g Gateway) DeleteDeployment(ctx context.Context, deploymentID int64) (int64, error) {
	n, err := g.deployments().Delete(ctx, deploymentID)
	if err != nil {
		return 0, fmt.Errorf("delete deployment=%d: %w", deploymentID, err)
	}
	return n, nil
}

func (g Gateway) RemoveVehicle(ctx context.Context, tripID, deploymentID int64) (int64, int64, error) {
	db := g.db()
	if db == nil {
		return 0, 0, fmt.Errorf("remove vehicle: database belum terhubung")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("remove vehicle: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted, err := g.deployments().WithTx(tx).Delete(ctx, deploymentID)
	if err != nil {
		return 0, 0, fmt.Errorf("remove vehicle: delete deployment=%d: %w", deploymentID, err)
	}
	cancelled, err := g.bookings().WithTx(tx).CancelConfirmed(ctx, tripID)
	if err != nil {
		return 0, 0, fmt.Errorf("remove vehicle: cancel bookings trip=%d: %w", tripID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("remove vehicle: commit: %w", err)
	}
	return deleted, cancelled, nil
}
