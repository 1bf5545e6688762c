package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	intconfig "movi/internal/config"
	"movi/internal/repositories"
	"movi/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries what the HTTP layer needs beyond the shared DB: the agent
// (which owns the pending store) and token issuing.
type Handler struct {
	DB           *sql.DB
	AgentService services.AgentService
	AuthService  services.AuthService
}

func (h *Handler) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

func (h *Handler) resolver() services.TripResolver {
	if h.AgentService.Resolver != nil {
		return h.AgentService.Resolver
	}
	return services.Resolver{DB: h.DB}
}

func (h *Handler) trips() repositories.TripRepository {
	return repositories.TripRepository{DB: h.DB}
}

func (h *Handler) deployments() repositories.DeploymentRepository {
	return repositories.DeploymentRepository{DB: h.DB}
}

func (h *Handler) bookings() repositories.BookingRepository {
	return repositories.BookingRepository{DB: h.DB}
}

func (h *Handler) vehicles() repositories.VehicleRepository {
	return repositories.VehicleRepository{DB: h.DB}
}

// paramID parses a positive int64 path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_"+name, name+" tidak valid", nil)
		return 0, false
	}
	return id, true
}
