package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"movi/internal/domain"
	"movi/internal/http/middleware"
	"movi/internal/intent"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
)

type agentRequest struct {
	Input       string `json:"input"`
	ImageText   string `json:"imageText"`
	CurrentPage string `json:"currentPage"`
	PendingID   string `json:"pendingId"`
}

// POST /api/agent
//
// User-facing outcomes (clarification, not found, unrecognized) are 200
// with ok=false; only store faults become 5xx.
func (h *Handler) PostAgent(c *gin.Context) {
	var req agentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	reqID := middleware.GetRequestID(c)
	if op, ok := middleware.GetOperator(c); ok {
		utils.LogEvent(reqID, "agent", "request", fmt.Sprintf("operator_id=%d role=%s", op.OperatorID, op.Role))
	}

	resp, err := h.AgentService.Handle(c.Request.Context(), reqID, intent.Input{
		Text:        req.Input,
		ImageText:   req.ImageText,
		CurrentPage: req.CurrentPage,
		PendingID:   req.PendingID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type imageParseRequest struct {
	Text string `json:"text"`
}

// POST /api/image/parse resolves text extracted from a screenshot to a trip.
func (h *Handler) ParseImage(c *gin.Context) {
	var req imageParseRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		RespondDomainError(c, domain.ValidationError{Field: "text", Msg: "wajib diisi"})
		return
	}

	trip, found, err := h.resolver().ResolveTrip(c.Request.Context(), text)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "store access failed", Err: err})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "trip": trip})
}
