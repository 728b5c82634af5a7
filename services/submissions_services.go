package services

import (
	"errors"
	"fmt"
	"time"

	"api/config"
	"api/database"
	"api/metrics"
	"api/models"
	"api/utils/answers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// RecordAttempt persists one graded submission and returns the resulting
// attempt count.
//
// Authenticated users keep a single row per (puzzle, user): the insert and
// the increment are one conflict-resolving statement, so concurrent
// double-submission by the same user cannot lose a count. Anonymous
// submissions insert a fresh row each time and always report attempt 1.
func RecordAttempt(puzzleID uint, userID *string, rawAnswer string, correct bool, ip, userAgent *string) (int, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("upsert", "submissions", start)

	normalized := answers.Normalize(rawAnswer)
	now := time.Now().UTC()

	if userID == nil {
		submission := models.Submission{
			PuzzleID:   puzzleID,
			UserID:     nil,
			AnswerRaw:  rawAnswer,
			AnswerNorm: normalized,
			Correct:    correct,
			Attempts:   1,
			IP:         ip,
			UserAgent:  userAgent,
		}
		if err := database.DB.Create(&submission).Error; err != nil {
			return 0, fmt.Errorf("failed to record submission: %w", err)
		}
		return 1, nil
	}

	var attempts int
	err := database.DB.Raw(`
		INSERT INTO submissions (id, puzzle_id, user_id, answer_raw, answer_norm, correct, attempts, ip, user_agent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, ?, ?)
		ON CONFLICT (puzzle_id, user_id) DO UPDATE SET
			answer_raw = excluded.answer_raw,
			answer_norm = excluded.answer_norm,
			correct = excluded.correct,
			ip = excluded.ip,
			user_agent = excluded.user_agent,
			updated_at = excluded.updated_at,
			attempts = submissions.attempts + 1
		RETURNING attempts`,
		uuid.NewString(), puzzleID, *userID, rawAnswer, normalized, correct, ip, userAgent, now, now,
	).Scan(&attempts).Error
	if err != nil {
		return 0, fmt.Errorf("failed to record submission: %w", err)
	}

	return attempts, nil
}

// GetUserSubmission returns the rolled-up submission state of a user on a
// puzzle, or ErrSubmissionNotFound.
func GetUserSubmission(puzzleID uint, userID string) (*models.Submission, error) {
	var submission models.Submission
	err := database.DB.
		Where("puzzle_id = ? AND user_id = ?", puzzleID, userID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &submission, nil
}

// SubmissionCooldown reports how long an authenticated user must wait
// before their next attempt on a puzzle. Zero means no cooldown. Cooldowns
// only apply after repeated wrong answers.
func SubmissionCooldown(puzzleID uint, userID string) (time.Duration, error) {
	existing, err := GetUserSubmission(puzzleID, userID)
	if errors.Is(err, ErrSubmissionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if existing.Correct {
		return 0, nil
	}

	cfg := config.DefaultSubmitRateLimitConfig
	elapsed := time.Since(existing.UpdatedAt)

	if existing.Attempts >= cfg.AttemptsThreshold2 {
		if remaining := cfg.CooldownDuration2 - elapsed; remaining > 0 {
			return remaining, nil
		}
		return 0, nil
	}
	if existing.Attempts >= cfg.AttemptsThreshold1 {
		if remaining := cfg.CooldownDuration1 - elapsed; remaining > 0 {
			return remaining, nil
		}
	}
	return 0, nil
}
