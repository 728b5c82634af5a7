package models

import "time"

// Answer verification modes for a puzzle. Exactly one of AnswerHash or
// AnswerRegex is non-null, matching AnswerMode.
const (
	AnswerModeHash  = "hash"
	AnswerModeRegex = "regex"
)

// Puzzle represents one day's challenge, upserted by the sync job keyed on
// its UTC date. The plaintext answer is never stored, only its commitment.
type Puzzle struct {
	ID          uint      `gorm:"primary_key;auto_increment" json:"id"`
	DateUTC     string    `gorm:"type:varchar(10);uniqueIndex;not null;column:date_utc" json:"date_utc"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Summary     *string   `gorm:"type:text" json:"summary"`
	StoragePath string    `gorm:"type:varchar(255);not null;column:storage_path" json:"storage_path"`
	AnswerMode  string    `gorm:"type:varchar(10);not null;column:answer_mode" json:"-"`
	AnswerHash  *string   `gorm:"type:varchar(64);column:answer_hash" json:"-"`
	AnswerRegex *string   `gorm:"type:varchar(255);column:answer_regex" json:"-"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}
