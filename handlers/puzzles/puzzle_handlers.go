package puzzles

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"api/database"
	"api/services"

	"github.com/gin-gonic/gin"
)

// GetTodayPuzzle returns the latest published puzzle with a short-lived
// download URL for its archive
// @Summary Get today's puzzle
// @Description Get the latest published puzzle and a signed archive download URL
// @Tags Puzzles
// @Produce json
// @Success 200 {object} TodayResponse
// @Router /puzzles/today [get]
func GetTodayPuzzle(c *gin.Context) {
	ctx := c.Request.Context()

	cacheKey := "puzzle:today"
	var cached TodayResponse
	if found, _ := database.GetFromCache(ctx, cacheKey, &cached); found {
		// Signed URLs must stay fresh, only the metadata is cached
		if cached.Available && cached.Puzzle != nil {
			signed, err := signPath(c, cached.Puzzle.ID)
			if err != nil {
				return
			}
			cached.Puzzle.DownloadURL = signed
		}
		c.JSON(http.StatusOK, cached)
		return
	}

	puzzle, err := services.GetTodayPuzzle()
	if err != nil {
		if errors.Is(err, services.ErrPuzzleNotFound) {
			c.JSON(http.StatusOK, TodayResponse{Available: false})
			return
		}
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := TodayResponse{
		Available: true,
		Puzzle: &PuzzleResponse{
			ID:      puzzle.ID,
			Date:    puzzle.DateUTC,
			Title:   puzzle.Title,
			Summary: puzzle.Summary,
		},
	}
	if err := database.SetCache(ctx, cacheKey, resp); err != nil {
		log.Printf("Failed to cache today puzzle: %v", err)
	}

	signed, err := services.Store.SignedURL(ctx, puzzle.StoragePath)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrSignFailed)
		return
	}
	resp.Puzzle.DownloadURL = signed

	c.JSON(http.StatusOK, resp)
}

// ListPuzzles returns the archive of published puzzles
// @Summary List published puzzles
// @Description Get all published puzzles, newest first
// @Tags Puzzles
// @Produce json
// @Success 200 {array} PuzzleResponse
// @Router /puzzles [get]
func ListPuzzles(c *gin.Context) {
	puzzles, err := services.ListPublishedPuzzles()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]PuzzleResponse, 0, len(puzzles))
	for _, p := range puzzles {
		out = append(out, PuzzleResponse{
			ID:      p.ID,
			Date:    p.DateUTC,
			Title:   p.Title,
			Summary: p.Summary,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetPuzzle returns one published puzzle's metadata
// @Summary Get a puzzle
// @Description Get a single published puzzle by ID
// @Tags Puzzles
// @Produce json
// @Param id path int true "Puzzle ID"
// @Success 200 {object} PuzzleResponse
// @Failure 400,404 {object} map[string]string
// @Router /puzzles/{id} [get]
func GetPuzzle(c *gin.Context) {
	puzzleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	puzzle, err := services.GetPuzzleByID(uint(puzzleID))
	if err != nil || !puzzle.Published {
		respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
		return
	}

	c.JSON(http.StatusOK, PuzzleResponse{
		ID:      puzzle.ID,
		Date:    puzzle.DateUTC,
		Title:   puzzle.Title,
		Summary: puzzle.Summary,
	})
}

// GetPuzzleDownloadURL returns a fresh signed archive URL for a puzzle
// @Summary Get a puzzle download URL
// @Description Get a short-lived signed URL for the puzzle archive
// @Tags Puzzles
// @Produce json
// @Param id path int true "Puzzle ID"
// @Success 200 {object} map[string]string
// @Failure 400,404 {object} map[string]string
// @Router /puzzles/{id}/download [get]
func GetPuzzleDownloadURL(c *gin.Context) {
	puzzleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	signed, err := signPath(c, uint(puzzleID))
	if err != nil {
		return // Error already written
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": signed})
}

// signPath loads the puzzle and presigns its archive path, writing the
// error response itself on failure.
func signPath(c *gin.Context, puzzleID uint) (string, error) {
	puzzle, err := services.GetPuzzleByID(puzzleID)
	if err != nil || !puzzle.Published {
		respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
		return "", services.ErrPuzzleNotFound
	}

	signed, err := services.Store.SignedURL(c.Request.Context(), puzzle.StoragePath)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrSignFailed)
		return "", err
	}
	return signed, nil
}
