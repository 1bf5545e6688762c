package handlers

import (
	"net/http"

	"movi/internal/http/middleware"
	"movi/internal/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, op, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "username="+op.Username)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"operator": op,
	})
}
