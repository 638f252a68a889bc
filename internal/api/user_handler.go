package api

import (
	"errors"
	"net/http"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler serves the role-scoped user listing.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns the caller's roster view: a trainer gets their trainees
// enriched with streak fields, a trainee gets a single-element list holding
// only their own record.
func (h *UserHandler) ListUsers(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	callerRole, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify role from token")
		return
	}

	view, err := h.userService.ListUsers(c.Request.Context(), callerID, callerRole)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.WithError(err).Error("user listing failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	// Both variants flatten to a JSON array for the client.
	if view.Role == domain.RoleTrainer {
		c.JSON(http.StatusOK, view.Trainees)
		return
	}
	c.JSON(http.StatusOK, []UserResponse{MapUserToResponse(view.Self)})
}

// GetUser returns a single user enriched with streak fields.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserWithStreak(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.WithError(err).Error("user lookup failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}
