package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"api/config"
	"api/database"
	"api/metrics"
	"api/models"
	"api/utils/answers"

	"gorm.io/gorm/clause"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// PuzzleMeta is the authoring contract of one puzzle folder's meta.json.
type PuzzleMeta struct {
	DateUTC     string `json:"date_utc"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	AnswerMode  string `json:"answer_mode"`
	AnswerPlain string `json:"answer_plain"`
	AnswerRegex string `json:"answer_regex"`
	Published   bool   `json:"published"`
}

// SyncReport aggregates the outcome of one sync run.
type SyncReport struct {
	Processed int      `json:"processed"`
	Uploads   int      `json:"uploads"`
	Upserts   int      `json:"upserts"`
	Errors    []string `json:"errors,omitempty"`
}

// SyncPuzzles walks the local puzzle tree, uploads each folder's archive
// and upserts its metadata keyed on date_utc. One folder's failure never
// aborts the others; failures are itemized in the report. Re-running on an
// unchanged tree overwrites rows and archives in place.
func SyncPuzzles(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	entries, err := os.ReadDir(config.PuzzlesDir)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return report, fmt.Errorf("puzzles directory not found: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		report.Processed++

		if err := syncPuzzleFolder(ctx, entry.Name(), &report); err != nil {
			report.Errors = append(report.Errors, err.Error())
			metrics.SyncUnitErrors.Inc()
			log.Printf("Sync: %v", err)
		}
	}

	// Cached puzzle reads may now be stale
	database.InvalidateCache(ctx, "puzzle:*")

	if len(report.Errors) > 0 {
		metrics.SyncRuns.WithLabelValues("partial").Inc()
	} else {
		metrics.SyncRuns.WithLabelValues("ok").Inc()
	}

	if len(report.Errors) > 0 && config.AdminEmail != "" {
		if err := NewEmailService().SendSyncReportEmail(config.AdminEmail, report); err != nil {
			log.Printf("Failed to send sync report email: %v", err)
		}
	}

	return report, nil
}

func syncPuzzleFolder(ctx context.Context, folder string, report *SyncReport) error {
	folderPath := filepath.Join(config.PuzzlesDir, folder)

	metaPath := filepath.Join(folderPath, "meta.json")
	metaContent, err := os.ReadFile(metaPath)
	if err != nil {
		return fmt.Errorf("skipping %s: no meta.json found", folder)
	}

	var meta PuzzleMeta
	if err := json.Unmarshal(metaContent, &meta); err != nil {
		return fmt.Errorf("skipping %s: invalid meta.json: %v", folder, err)
	}

	// Pick date: prefer meta.date_utc; if absent and the folder name is an
	// ISO date, use the folder name
	var dateUTC string
	switch {
	case isoDatePattern.MatchString(meta.DateUTC):
		dateUTC = meta.DateUTC
	case isoDatePattern.MatchString(folder):
		dateUTC = folder
	default:
		return fmt.Errorf("skipping %s: no valid date found", folder)
	}

	zipFile, err := findArchive(folderPath)
	if err != nil {
		return fmt.Errorf("skipping %s: %v", folder, err)
	}
	storagePath := folder + "/" + zipFile

	mode, answerHash, answerRegex, err := answerMaterial(meta)
	if err != nil {
		return fmt.Errorf("skipping %s: %v", folder, err)
	}

	if err := Store.UploadArchive(ctx, storagePath, filepath.Join(folderPath, zipFile)); err != nil {
		return fmt.Errorf("failed to upload %s: %v", storagePath, err)
	}
	report.Uploads++

	title := meta.Title
	if title == "" {
		title = "Untitled"
	}
	var summary *string
	if meta.Summary != "" {
		summary = &meta.Summary
	}

	puzzle := models.Puzzle{
		DateUTC:     dateUTC,
		Title:       title,
		Summary:     summary,
		StoragePath: storagePath,
		AnswerMode:  mode,
		AnswerHash:  answerHash,
		AnswerRegex: answerRegex,
		Published:   meta.Published,
	}

	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date_utc"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "summary", "storage_path", "answer_mode", "answer_hash", "answer_regex", "published",
		}),
	}).Create(&puzzle).Error
	if err != nil {
		return fmt.Errorf("failed to upsert puzzle %s: %v", folder, err)
	}
	report.Upserts++

	return nil
}

// findArchive returns the single .zip file inside the folder.
func findArchive(folderPath string) (string, error) {
	files, err := os.ReadDir(folderPath)
	if err != nil {
		return "", fmt.Errorf("unreadable folder: %v", err)
	}
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".zip") {
			return f.Name(), nil
		}
	}
	return "", fmt.Errorf("no .zip file found")
}

// answerMaterial builds the stored answer fields for the declared mode.
// The plaintext answer is committed through the same Normalize/Commit
// pipeline the verifier uses and is never persisted.
func answerMaterial(meta PuzzleMeta) (string, *string, *string, error) {
	mode := meta.AnswerMode
	if mode == "" {
		mode = models.AnswerModeHash
	}

	switch mode {
	case models.AnswerModeHash:
		if meta.AnswerPlain == "" {
			return "", nil, nil, fmt.Errorf("no answer_plain for hash mode")
		}
		hash := answers.Commit(answers.Normalize(meta.AnswerPlain))
		return mode, &hash, nil, nil
	case models.AnswerModeRegex:
		if meta.AnswerRegex == "" {
			return "", nil, nil, fmt.Errorf("no answer_regex for regex mode")
		}
		if _, err := answers.CompilePattern(meta.AnswerRegex); err != nil {
			return "", nil, nil, fmt.Errorf("answer_regex does not compile: %v", err)
		}
		pattern := meta.AnswerRegex
		return mode, nil, &pattern, nil
	default:
		return "", nil, nil, fmt.Errorf("unknown answer_mode %q", mode)
	}
}
