package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/http/middleware"
	"movi/internal/repositories"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) stops() repositories.StopRepository {
	return repositories.StopRepository{DB: h.DB}
}

func (h *Handler) paths() repositories.PathRepository {
	return repositories.PathRepository{DB: h.DB}
}

func (h *Handler) transportRoutes() repositories.RouteRepository {
	return repositories.RouteRepository{DB: h.DB}
}

// GET /api/stops
func (h *Handler) ListStops(c *gin.Context) {
	list, err := h.stops().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil stops", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/stops
func (h *Handler) CreateStop(c *gin.Context) {
	var in models.StopInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "wajib diisi"})
		return
	}
	if (in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90)) ||
		(in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180)) {
		RespondDomainError(c, domain.ValidationError{Field: "latitude/longitude", Msg: "di luar jangkauan"})
		return
	}

	id, err := h.stops().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, mapWriteError(err, "stop"))
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "stops", "create", fmt.Sprintf("stop_id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"stop_id": id})
}

// GET /api/paths
func (h *Handler) ListPaths(c *gin.Context) {
	list, err := h.paths().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil paths", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/paths with stop_ids in travel order.
func (h *Handler) CreatePath(c *gin.Context) {
	var in models.PathInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "path_name", Msg: "wajib diisi"})
		return
	}
	for _, id := range in.StopIDs {
		if id <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "stop_ids", Msg: "berisi id tidak valid"})
			return
		}
	}

	id, err := h.paths().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, mapWriteError(err, "path"))
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "paths", "create", fmt.Sprintf("path_id=%d stops=%d", id, len(in.StopIDs)))
	c.JSON(http.StatusCreated, gin.H{"path_id": id})
}

// GET /api/routes
func (h *Handler) ListTransportRoutes(c *gin.Context) {
	list, err := h.transportRoutes().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil routes", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/routes
func (h *Handler) CreateTransportRoute(c *gin.Context) {
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" {
		RespondDomainError(c, domain.ValidationError{Field: "route_display_name", Msg: "wajib diisi"})
		return
	}
	if in.PathID != nil && *in.PathID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "path_id", Msg: "tidak valid"})
		return
	}

	id, err := h.transportRoutes().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, mapWriteError(err, "route"))
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "routes", "create", fmt.Sprintf("route_id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"route_id": id})
}

// PATCH /api/routes/:id/deactivate. Repeating it answers changed=0.
func (h *Handler) DeactivateTransportRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.transportRoutes().Deactivate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal menonaktifkan route", Err: err})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "routes", "deactivate", fmt.Sprintf("route_id=%d changed=%d", id, n))
	c.JSON(http.StatusOK, gin.H{"changed": n})
}
