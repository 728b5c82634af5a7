package submissions

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"api/metrics"
	"api/middleware"
	"api/realtime"
	"api/services"
	"api/utils/answers"

	"github.com/gin-gonic/gin"
)

// Submit grades an answer and records the attempt
// @Summary Submit an answer
// @Description Grade a raw answer against a puzzle and record the attempt. Works for anonymous and authenticated users
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Submission"
// @Success 200 {object} SubmitResponse
// @Failure 400,404,429,500 {object} map[string]string
// @Router /submit [post]
func Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrMissingFields)
		return
	}

	puzzle, err := services.GetPuzzleByID(req.PuzzleID)
	if err != nil {
		if errors.Is(err, services.ErrPuzzleNotFound) {
			respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
			return
		}
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	user := middleware.GetOptionalUser(c)
	authenticated := "false"
	var userID *string
	if user != nil {
		authenticated = "true"
		userID = &user.ID

		cooldown, err := services.SubmissionCooldown(puzzle.ID, user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if cooldown > 0 {
			metrics.SubmissionCooldowns.Inc()
			c.Header("Retry-After", strconv.Itoa(int(cooldown.Seconds())+1))
			respondWithError(c, http.StatusTooManyRequests, ErrCooldownActive)
			return
		}
	}

	correct, err := answers.Verify(puzzle.AnswerMode, puzzle.AnswerHash, puzzle.AnswerRegex, req.Answer)
	if err != nil {
		// Broken answer material is an operator fault, never a graded
		// outcome for the submitter
		log.Printf("Puzzle %d cannot be verified: %v", puzzle.ID, err)
		metrics.SubmissionsTotal.WithLabelValues("error", authenticated).Inc()
		respondWithError(c, http.StatusInternalServerError, ErrPuzzleMisconfigured)
		return
	}

	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	metrics.SubmissionsTotal.WithLabelValues(outcome, authenticated).Inc()

	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")
	var ipPtr, uaPtr *string
	if ip != "" {
		ipPtr = &ip
	}
	if userAgent != "" {
		uaPtr = &userAgent
	}

	attempts, err := services.RecordAttempt(puzzle.ID, userID, req.Answer, correct, ipPtr, uaPtr)
	if err != nil {
		// The grade is known even when the ledger write fails; report it
		// without inventing an attempt count
		log.Printf("Failed to record attempt on puzzle %d: %v", puzzle.ID, err)
		c.JSON(http.StatusOK, SubmitResponse{
			Correct: correct,
			Warning: ErrAttemptNotRecorded,
		})
		return
	}

	if correct && user != nil {
		realtime.BroadcastSolve(realtime.SolveUpdate{
			PuzzleID: puzzle.ID,
			UserName: user.Name,
			Attempts: attempts,
			SolvedAt: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Correct:  correct,
		Attempts: &attempts,
	})
}

// GetMySubmission returns the caller's attempt roll-up on a puzzle
// @Summary Get my submission
// @Description Get the authenticated user's attempt state for a puzzle
// @Tags Submissions
// @Produce json
// @Param puzzle_id query int true "Puzzle ID"
// @Success 200 {object} MySubmissionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /submissions/me [get]
// @Security Bearer
func GetMySubmission(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	puzzleID, err := strconv.ParseUint(c.Query("puzzle_id"), 10, 32)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrMissingFields)
		return
	}

	submission, err := services.GetUserSubmission(uint(puzzleID), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			respondWithError(c, http.StatusNotFound, ErrNoSubmission)
			return
		}
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, MySubmissionResponse{
		PuzzleID:  submission.PuzzleID,
		Attempts:  submission.Attempts,
		Correct:   submission.Correct,
		AnswerRaw: submission.AnswerRaw,
		CreatedAt: submission.CreatedAt,
		UpdatedAt: submission.UpdatedAt,
	})
}
