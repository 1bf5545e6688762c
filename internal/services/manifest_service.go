package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/repositories"
	"movi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ManifestService renders the passenger manifest of a trip as PDF.
type ManifestService struct {
	Trips       repositories.TripRepository
	Deployments repositories.DeploymentRepository
	Bookings    repositories.BookingRepository
	RequestID   string
	Loader      func(ctx context.Context, tripID int64) (manifestData, error)
}

type manifestData struct {
	Trip       models.Trip
	Deployment *models.Deployment
	Bookings   []models.Booking
}

// Generate returns the PDF bytes and a download filename. An unknown trip
// is a NotFoundError.
func (s ManifestService) Generate(ctx context.Context, tripID int64) ([]byte, string, error) {
	if tripID <= 0 {
		return nil, "", domain.ValidationError{Field: "trip_id", Msg: "must be positive"}
	}
	data, err := s.load(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "manifest", "generate",
		fmt.Sprintf("trip_id=%d bookings=%d", tripID, len(data.Bookings)))
	return buildManifestPDF(data)
}

func (s ManifestService) load(ctx context.Context, tripID int64) (manifestData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, tripID)
	}
	var out manifestData

	trip, found, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return out, fmt.Errorf("load trip=%d: %w", tripID, err)
	}
	if !found {
		return out, domain.NotFoundError{Resource: "trip"}
	}
	out.Trip = trip

	if out.Deployment, err = s.Deployments.FindByTrip(ctx, tripID); err != nil {
		return out, fmt.Errorf("load deployment trip=%d: %w", tripID, err)
	}
	if out.Bookings, err = s.Bookings.ListConfirmed(ctx, tripID); err != nil {
		return out, fmt.Errorf("load bookings trip=%d: %w", tripID, err)
	}
	return out, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Manifest", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP MANIFEST")
	pdf.Ln(12)

	vehicle, driver := "-", "-"
	if d.Deployment != nil {
		vehicle = fmt.Sprintf("#%d", d.Deployment.VehicleID)
		driver = fmt.Sprintf("#%d", d.Deployment.DriverID)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Trip       : %s", safe(d.Trip.DisplayName, "-")),
		fmt.Sprintf("Trip ID    : %d", d.Trip.ID),
		fmt.Sprintf("Date       : %s", safe(d.Trip.ScheduledDate, "-")),
		fmt.Sprintf("Vehicle    : %s", vehicle),
		fmt.Sprintf("Driver     : %s", driver),
		fmt.Sprintf("Confirmed  : %d", len(d.Bookings)),
		fmt.Sprintf("Printed    : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 8, "No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Booking", "1", 0, "C", false, 0, "")
	pdf.CellFormat(100, 8, "Passenger", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if len(d.Bookings) == 0 {
		pdf.CellFormat(145, 8, "No confirmed bookings.", "1", 1, "C", false, 0, "")
	}
	for i, b := range d.Bookings {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("#%d", b.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(100, 7, safe(b.PassengerName, "-"), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%d_%s.pdf", d.Trip.ID, safeFilenamePart(d.Trip.DisplayName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
