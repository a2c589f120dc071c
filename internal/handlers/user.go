package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"user-lookup-service/internal/middleware"
	"user-lookup-service/internal/repositories"
	"user-lookup-service/internal/services"
	"user-lookup-service/internal/telemetry"
)

// LookupRequest is bound from the /users/:user_id path.
type LookupRequest struct {
	UserID int64 `uri:"user_id"`
}

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{"detail": "user_id must be an integer"})
		return
	}

	ctx := telemetry.WithRequestID(c.Request.Context(), middleware.RequestIDFrom(c))
	user, err := h.userService.Lookup(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	c.JSON(nethttp.StatusOK, user)
}
