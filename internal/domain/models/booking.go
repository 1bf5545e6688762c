package models

import "time"

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is a passenger reservation on one trip.
type Booking struct {
	ID            int64     `json:"booking_id"`
	TripID        int64     `json:"trip_id"`
	PassengerName string    `json:"passenger_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingInput is the payload for creating a booking.
type BookingInput struct {
	TripID        int64  `json:"trip_id"`
	PassengerName string `json:"passenger_name"`
}
