package handlers

import (
	"net/http"

	"movi/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles
func (h *Handler) ListVehicles(c *gin.Context) {
	list, err := h.vehicles().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil vehicles", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/vehicles/unassigned?date=YYYY-MM-DD
func (h *Handler) ListUnassignedVehicles(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	list, err := h.vehicles().ListUnassigned(c.Request.Context(), date)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil vehicles", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}
