package v1

import (
	"net/http"

	"api/config"
	"api/services"

	"github.com/gin-gonic/gin"
)

// syncAuthorized accepts either the scheduler's bearer secret or the
// operator's query key.
func syncAuthorized(c *gin.Context) bool {
	if config.CronSecret != "" && c.GetHeader("Authorization") == "Bearer "+config.CronSecret {
		return true
	}
	key := c.Query("key")
	return key != "" && key == config.SyncSecretKey
}

// triggerSync runs the puzzle sync job
// @Summary Trigger puzzle sync
// @Description Upload local puzzle archives and upsert their metadata. Authorized by cron secret or sync key
// @Tags Sync
// @Produce json
// @Success 200 {object} services.SyncReport
// @Failure 401,500 {object} map[string]string
// @Router /sync [post]
func triggerSync(c *gin.Context) {
	if !syncAuthorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := services.SyncPuzzles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// signCheck presigns an arbitrary object path, an operator probe for
// storage configuration
// @Summary Check storage signing
// @Description Presign an object path to verify storage credentials
// @Tags Sync
// @Produce json
// @Param path query string true "Object path, e.g. 2025-01-01/puzzle.zip"
// @Success 200 {object} map[string]string
// @Failure 400,401,500 {object} map[string]string
// @Router /storage/sign-check [get]
func signCheck(c *gin.Context) {
	if !syncAuthorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing ?path="})
		return
	}

	signed, err := services.Store.SignedURL(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path, "signedUrl": signed})
}

// RegisterSyncRoutes registers the sync trigger and storage probe routes
func RegisterSyncRoutes(r *gin.RouterGroup) {
	r.POST("/sync", triggerSync)
	r.GET("/storage/sign-check", signCheck)
}
