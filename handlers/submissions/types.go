package submissions

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrMissingFields       = "Missing answer or puzzle ID"
	ErrPuzzleNotFound      = "Puzzle not found"
	ErrPuzzleMisconfigured = "Puzzle answer configuration is invalid"
	ErrNotAuthenticated    = "Not authenticated"
	ErrNoSubmission        = "No submission found for this puzzle"
	ErrAttemptNotRecorded  = "Attempt could not be recorded"
	ErrCooldownActive      = "Too many wrong answers, try again later"
)

// SubmitRequest model for answer submissions
type SubmitRequest struct {
	PuzzleID uint   `json:"puzzle_id" form:"puzzle_id" binding:"required"`
	Answer   string `json:"answer" form:"answer" binding:"required"`
}

// SubmitResponse reports the graded outcome. Attempts is nil when the
// ledger write failed; the grade is still authoritative.
type SubmitResponse struct {
	Correct  bool   `json:"correct"`
	Attempts *int   `json:"attempts"`
	Warning  string `json:"warning,omitempty"`
}

// MySubmissionResponse is the rolled-up state of the caller's attempts on
// one puzzle
type MySubmissionResponse struct {
	PuzzleID  uint      `json:"puzzle_id"`
	Attempts  int       `json:"attempts"`
	Correct   bool      `json:"correct"`
	AnswerRaw string    `json:"answer_raw"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
