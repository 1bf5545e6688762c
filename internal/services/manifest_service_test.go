package services

import (
	"bytes"
	"context"
	"testing"

	"movi/internal/domain"
	"movi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestManifestServiceGenerate(t *testing.T) {
	loader := func(_ context.Context, id int64) (manifestData, error) {
		return manifestData{
			Trip:       models.Trip{ID: id, DisplayName: "Bulk - 00:01", ScheduledDate: "2025-11-20"},
			Deployment: &models.Deployment{ID: 1, TripID: id, VehicleID: 4, DriverID: 9},
			Bookings: []models.Booking{
				{ID: 1, TripID: id, PassengerName: "Asha", Status: models.BookingConfirmed},
				{ID: 2, TripID: id, PassengerName: "Ravi", Status: models.BookingConfirmed},
			},
		}, nil
	}

	pdf, filename, err := ManifestService{Loader: loader}.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "MANIFEST_1_Bulk_-_00_01.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestManifestServiceGenerate_UnknownTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM daily_trips WHERE trip_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "display_name", "route_id", "scheduled_date"}))

	svc := ManifestService{}
	svc.Trips.DB = db
	_, _, err = svc.Generate(context.Background(), 42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestManifestServiceGenerate_RejectsBadID(t *testing.T) {
	_, _, err := ManifestService{}.Generate(context.Background(), 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
