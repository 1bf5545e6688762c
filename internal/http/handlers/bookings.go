package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/http/middleware"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/trip/:tripId returns confirmed bookings only.
func (h *Handler) ListTripBookings(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		return
	}
	list, err := h.bookings().ListConfirmed(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil bookings", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.PassengerName = strings.TrimSpace(in.PassengerName)
	if in.TripID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "trip_id", Msg: "wajib diisi"})
		return
	}
	if in.PassengerName == "" {
		RespondDomainError(c, domain.ValidationError{Field: "passenger_name", Msg: "wajib diisi"})
		return
	}

	id, err := h.bookings().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, mapWriteError(err, "booking"))
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "create", fmt.Sprintf("booking_id=%d trip_id=%d", id, in.TripID))
	c.JSON(http.StatusCreated, models.Booking{
		ID:            id,
		TripID:        in.TripID,
		PassengerName: in.PassengerName,
		Status:        models.BookingConfirmed,
		CreatedAt:     time.Now(),
	})
}
