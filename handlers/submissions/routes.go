package submissions

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to answer submissions
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/submit", Submit)
	r.GET("/submissions/me", GetMySubmission)
}
