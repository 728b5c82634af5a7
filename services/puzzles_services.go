package services

import (
	"errors"
	"fmt"

	"api/database"
	"api/models"

	"gorm.io/gorm"
)

var ErrPuzzleNotFound = errors.New("puzzle not found")

// GetPuzzleByID returns the puzzle with the given id, or ErrPuzzleNotFound.
func GetPuzzleByID(puzzleID uint) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	if err := database.DB.First(&puzzle, "id = ?", puzzleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &puzzle, nil
}

// GetTodayPuzzle returns the latest published puzzle, or ErrPuzzleNotFound
// when nothing is published yet.
func GetTodayPuzzle() (*models.Puzzle, error) {
	var puzzle models.Puzzle
	err := database.DB.
		Where("published = ?", true).
		Order("date_utc DESC").
		First(&puzzle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &puzzle, nil
}

// ListPublishedPuzzles returns all published puzzles, newest first.
func ListPublishedPuzzles() ([]models.Puzzle, error) {
	var puzzles []models.Puzzle
	if err := database.DB.
		Where("published = ?", true).
		Order("date_utc DESC").
		Find(&puzzles).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return puzzles, nil
}
