package users

import (
	"net/http"

	"api/database"
	"api/middleware"
	"api/models"

	"github.com/gin-gonic/gin"
)

// ProfileStats summarizes a user's activity
type ProfileStats struct {
	Puzzles int64 `json:"puzzles_attempted"`
	Solved  int64 `json:"puzzles_solved"`
}

// GetUserProfile retrieves the authenticated user's profile
// @Summary Get User Profile
// @Description Get the profile information of the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user/profile [get]
// @Security Bearer
func GetUserProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	c.JSON(http.StatusOK, user)
}

// GetUserStats retrieves the authenticated user's solve statistics
// @Summary Get User Stats
// @Description Get attempt and solve counts for the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} ProfileStats
// @Failure 401 {object} map[string]string
// @Router /user/stats [get]
// @Security Bearer
func GetUserStats(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var stats ProfileStats
	database.DB.Model(&models.Submission{}).
		Where("user_id = ?", user.ID).
		Count(&stats.Puzzles)
	database.DB.Model(&models.Submission{}).
		Where("user_id = ? AND correct = ?", user.ID, true).
		Count(&stats.Solved)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers all routes related to user profiles
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	userGroup := r.Group("/user")
	{
		userGroup.GET("/profile", GetUserProfile)
		userGroup.GET("/stats", GetUserStats)
	}
}
