package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"movi/internal/domain"
	"movi/internal/http/middleware"
	"movi/internal/services"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
)

// dateQuery reads ?date=YYYY-MM-DD, defaulting to today.
func dateQuery(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return utils.Today(), true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", "format tanggal harus YYYY-MM-DD", nil)
		return "", false
	}
	return utils.FormatDate(d), true
}

// GET /api/daily_trips?date=YYYY-MM-DD
func (h *Handler) ListDailyTrips(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	list, err := h.trips().ListForDate(c.Request.Context(), date)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil daily trips", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/daily_trips/:id
func (h *Handler) GetDailyTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, found, err := h.trips().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil trip", Err: err})
		return
	}
	if !found {
		RespondDomainError(c, domain.NotFoundError{Resource: "trip"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/daily_trips/:id/manifest returns the trip manifest PDF (inline).
func (h *Handler) GetTripManifest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc := services.ManifestService{
		Trips:       h.trips(),
		Deployments: h.deployments(),
		Bookings:    h.bookings(),
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.Generate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
