package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/http/middleware"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDuplicateKey = 1062
	mysqlNoReferenced = 1452
)

// GET /api/deployments
func (h *Handler) ListDeployments(c *gin.Context) {
	list, err := h.deployments().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil deployments", Err: err})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/deployments
func (h *Handler) CreateDeployment(c *gin.Context) {
	var in models.DeploymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if in.TripID <= 0 || in.VehicleID <= 0 || in.DriverID <= 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "trip_id, vehicle_id dan driver_id wajib diisi"})
		return
	}

	id, err := h.deployments().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, mapWriteError(err, "deployment"))
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "deployments", "create",
		fmt.Sprintf("deployment_id=%d trip_id=%d vehicle_id=%d", id, in.TripID, in.VehicleID))
	c.JSON(http.StatusCreated, models.Deployment{
		ID:        id,
		TripID:    in.TripID,
		VehicleID: in.VehicleID,
		DriverID:  in.DriverID,
	})
}

// DELETE /api/deployments/:id. Deleting a missing id answers deleted=0.
func (h *Handler) DeleteDeployment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.deployments().Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal menghapus deployment", Err: err})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "deployments", "delete",
		fmt.Sprintf("deployment_id=%d deleted=%d", id, n))
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// GET /api/helpers/deployment_for_trip/:tripId
func (h *Handler) DeploymentForTrip(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		return
	}
	dep, err := h.deployments().FindByTrip(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengambil deployment", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": dep != nil, "deployment": dep})
}

// mapWriteError turns MySQL constraint violations into domain errors.
func mapWriteError(err error, resource string) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateKey:
			msg := resource + " sudah ada"
			if resource == "deployment" {
				msg = "trip sudah memiliki deployment"
			}
			return domain.ConflictError{Resource: resource, Msg: msg, Err: err}
		case mysqlNoReferenced:
			return domain.ValidationError{Msg: "referensi " + resource + " tidak ditemukan", Err: err}
		}
	}
	return domain.InternalError{Msg: "gagal menyimpan " + resource, Err: err}
}
