package puzzles

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to puzzles
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {

	puzzles := r.Group("/puzzles")
	{
		puzzles.GET("", ListPuzzles)
		puzzles.GET("/today", GetTodayPuzzle)
		puzzles.GET("/:id", GetPuzzle)
		puzzles.GET("/:id/download", GetPuzzleDownloadURL)
	}

	r.GET("/ws/puzzles/:id/solves", SolvesWebSocket)
}
