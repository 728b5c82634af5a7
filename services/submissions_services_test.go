package services

import (
	"path/filepath"
	"testing"
	"time"

	"api/database"
	"api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Puzzle{}, &models.Submission{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
}

func createTestPuzzle(t *testing.T, dateUTC string) models.Puzzle {
	t.Helper()

	hash := "0000000000000000000000000000000000000000000000000000000000000000"
	puzzle := models.Puzzle{
		DateUTC:     dateUTC,
		Title:       "Test Puzzle",
		StoragePath: dateUTC + "/puzzle.zip",
		AnswerMode:  models.AnswerModeHash,
		AnswerHash:  &hash,
		Published:   true,
	}
	if err := database.DB.Create(&puzzle).Error; err != nil {
		t.Fatalf("failed to create puzzle: %v", err)
	}
	return puzzle
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{Email: email, Name: "Test User"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestRecordAttemptCountsPerUser(t *testing.T) {
	setupTestDB(t)
	puzzle := createTestPuzzle(t, "2025-06-01")
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	attempts, err := RecordAttempt(puzzle.ID, &alice.ID, "first guess", false, nil, nil)
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("first attempt count = %d, want 1", attempts)
	}

	attempts, err = RecordAttempt(puzzle.ID, &alice.ID, "second guess", true, nil, nil)
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("second attempt count = %d, want 2", attempts)
	}

	// A different user's count is independent
	attempts, err = RecordAttempt(puzzle.ID, &bob.ID, "guess", false, nil, nil)
	if err != nil {
		t.Fatalf("other user attempt: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("other user attempt count = %d, want 1", attempts)
	}

	// One logical row per (puzzle, user), overwritten in place
	var count int64
	database.DB.Model(&models.Submission{}).
		Where("puzzle_id = ? AND user_id = ?", puzzle.ID, alice.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("submission rows for alice = %d, want 1", count)
	}

	var latest models.Submission
	if err := database.DB.Where("puzzle_id = ? AND user_id = ?", puzzle.ID, alice.ID).First(&latest).Error; err != nil {
		t.Fatalf("failed to load submission: %v", err)
	}
	if latest.AnswerRaw != "second guess" || !latest.Correct {
		t.Fatalf("latest attempt did not overwrite the row: %+v", latest)
	}
	if latest.AnswerNorm != "second guess" {
		t.Fatalf("answer_norm = %q, want normalized text", latest.AnswerNorm)
	}
}

func TestRecordAttemptAnonymousNeverAccumulates(t *testing.T) {
	setupTestDB(t)
	puzzle := createTestPuzzle(t, "2025-06-02")

	for i := 0; i < 2; i++ {
		attempts, err := RecordAttempt(puzzle.ID, nil, "Guess", false, nil, nil)
		if err != nil {
			t.Fatalf("anonymous attempt %d: %v", i+1, err)
		}
		if attempts != 1 {
			t.Fatalf("anonymous attempt count = %d, want 1", attempts)
		}
	}

	var count int64
	database.DB.Model(&models.Submission{}).
		Where("puzzle_id = ? AND user_id IS NULL", puzzle.ID).
		Count(&count)
	if count != 2 {
		t.Fatalf("anonymous submission rows = %d, want 2", count)
	}
}

func TestRecordAttemptNormalizesForStorage(t *testing.T) {
	setupTestDB(t)
	puzzle := createTestPuzzle(t, "2025-06-03")

	if _, err := RecordAttempt(puzzle.ID, nil, "  ANSWER   42 ", false, nil, nil); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	var submission models.Submission
	if err := database.DB.Where("puzzle_id = ?", puzzle.ID).First(&submission).Error; err != nil {
		t.Fatalf("failed to load submission: %v", err)
	}
	if submission.AnswerRaw != "  ANSWER   42 " {
		t.Fatalf("answer_raw should keep the exact text, got %q", submission.AnswerRaw)
	}
	if submission.AnswerNorm != "answer 42" {
		t.Fatalf("answer_norm = %q, want %q", submission.AnswerNorm, "answer 42")
	}
}

func TestSubmissionCooldown(t *testing.T) {
	setupTestDB(t)
	puzzle := createTestPuzzle(t, "2025-06-04")
	user := createTestUser(t, "cooldown@example.com")

	// No record, no cooldown
	if cd, err := SubmissionCooldown(puzzle.ID, user.ID); err != nil || cd != 0 {
		t.Fatalf("fresh user cooldown = %v, %v; want 0, nil", cd, err)
	}

	// Wrong answers up to the first threshold trigger a cooldown
	for i := 0; i < 3; i++ {
		if _, err := RecordAttempt(puzzle.ID, &user.ID, "nope", false, nil, nil); err != nil {
			t.Fatalf("attempt: %v", err)
		}
	}
	cd, err := SubmissionCooldown(puzzle.ID, user.ID)
	if err != nil {
		t.Fatalf("cooldown: %v", err)
	}
	if cd <= 0 || cd > 3*time.Minute {
		t.Fatalf("cooldown after 3 wrong attempts = %v, want within (0, 3m]", cd)
	}

	// A correct roll-up clears the cooldown
	if _, err := RecordAttempt(puzzle.ID, &user.ID, "right", true, nil, nil); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if cd, err := SubmissionCooldown(puzzle.ID, user.ID); err != nil || cd != 0 {
		t.Fatalf("cooldown after solve = %v, %v; want 0, nil", cd, err)
	}
}
