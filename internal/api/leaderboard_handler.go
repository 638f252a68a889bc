package api

import (
	"net/http"

	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LeaderboardHandler holds the leaderboard service dependency.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard returns ranked entries scoped to the caller's trainer roster.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
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

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), callerID, callerRole)
	if err != nil {
		logrus.WithError(err).Error("leaderboard query failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetStreak returns a trainee's streak; zeros when no row exists, never 404.
func (h *LeaderboardHandler) GetStreak(c *gin.Context) {
	streak, err := h.leaderboardService.GetStreak(c.Request.Context(), c.Param("traineeId"))
	if err != nil {
		logrus.WithError(err).Error("streak lookup failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load streak")
		return
	}
	c.JSON(http.StatusOK, streak)
}
