package puzzles

import "github.com/gin-gonic/gin"

// Constants for error messages
const (
	ErrPuzzleNotFound  = "Puzzle not found"
	ErrInvalidPuzzleID = "Invalid puzzle ID"
	ErrSignFailed      = "Failed to sign download URL"
)

// TodayResponse is the payload of the today endpoint. When no puzzle is
// published, Available is false and Puzzle is nil.
type TodayResponse struct {
	Available bool            `json:"available"`
	Puzzle    *PuzzleResponse `json:"puzzle,omitempty"`
}

// PuzzleResponse is the public view of a puzzle. Answer material never
// leaves the server.
type PuzzleResponse struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Summary     *string `json:"summary,omitempty"`
	DownloadURL string  `json:"downloadUrl,omitempty"`
}

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
