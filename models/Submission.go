package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission represents a user's attempts at solving a puzzle.
//
// Authenticated users keep one row per (puzzle, user); every new attempt
// overwrites it and bumps Attempts. Anonymous submissions insert a fresh
// row each time with Attempts fixed at 1.
type Submission struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	PuzzleID   uint      `gorm:"not null;column:puzzle_id;uniqueIndex:idx_submissions_puzzle_user" json:"puzzle_id"`
	UserID     *string   `gorm:"type:uuid;column:user_id;uniqueIndex:idx_submissions_puzzle_user" json:"user_id"`
	AnswerRaw  string    `gorm:"type:text;not null;column:answer_raw" json:"answer_raw"`
	AnswerNorm string    `gorm:"type:text;not null;column:answer_norm" json:"answer_norm"`
	Correct    bool      `gorm:"not null" json:"correct"`
	Attempts   int       `gorm:"not null" json:"attempts"`
	IP         *string   `gorm:"type:varchar(64)" json:"-"`
	UserAgent  *string   `gorm:"type:varchar(255);column:user_agent" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Puzzle     *Puzzle   `gorm:"foreignKey:PuzzleID" json:"-"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
