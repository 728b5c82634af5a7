package puzzles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"api/database"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeArchiveStore presigns without any object storage backend.
type fakeArchiveStore struct{}

func (fakeArchiveStore) UploadArchive(_ context.Context, _ string, _ string) error {
	return nil
}

func (fakeArchiveStore) SignedURL(_ context.Context, storagePath string) (string, error) {
	return "https://storage.test/" + storagePath, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Puzzle{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	prevStore := services.Store
	services.Store = fakeArchiveStore{}
	t.Cleanup(func() { services.Store = prevStore })

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api)
	return r
}

func createPuzzle(t *testing.T, dateUTC string, published bool) models.Puzzle {
	t.Helper()

	puzzle := models.Puzzle{
		DateUTC:     dateUTC,
		Title:       "Puzzle " + dateUTC,
		StoragePath: dateUTC + "/puzzle.zip",
		AnswerMode:  models.AnswerModeRegex,
		Published:   published,
	}
	if err := database.DB.Create(&puzzle).Error; err != nil {
		t.Fatalf("failed to create puzzle: %v", err)
	}
	return puzzle
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetTodayPuzzleNonePublished(t *testing.T) {
	r := setupRouter(t)

	// An unpublished puzzle must not surface as today's
	createPuzzle(t, "2025-08-01", false)

	w := get(t, r, "/api/v1/puzzles/today")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp TodayResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body %q: %v", w.Body.String(), err)
	}
	if resp.Available {
		t.Error("available = true, want false when nothing is published")
	}
	if resp.Puzzle != nil {
		t.Errorf("puzzle = %+v, want omitted", resp.Puzzle)
	}
}

func TestGetTodayPuzzle(t *testing.T) {
	r := setupRouter(t)

	createPuzzle(t, "2025-08-01", true)
	latest := createPuzzle(t, "2025-08-02", true)

	w := get(t, r, "/api/v1/puzzles/today")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp TodayResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body %q: %v", w.Body.String(), err)
	}
	if !resp.Available || resp.Puzzle == nil {
		t.Fatalf("response = %+v, want an available puzzle", resp)
	}
	if resp.Puzzle.ID != latest.ID || resp.Puzzle.Date != "2025-08-02" {
		t.Errorf("today = %+v, want the latest published puzzle", resp.Puzzle)
	}
	if want := "https://storage.test/" + latest.StoragePath; resp.Puzzle.DownloadURL != want {
		t.Errorf("downloadUrl = %q, want %q", resp.Puzzle.DownloadURL, want)
	}
}

func TestGetPuzzleUnpublished(t *testing.T) {
	r := setupRouter(t)
	puzzle := createPuzzle(t, "2025-08-03", false)

	w := get(t, r, fmt.Sprintf("/api/v1/puzzles/%d", puzzle.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (unpublished puzzles stay invisible)", w.Code)
	}

	w = get(t, r, fmt.Sprintf("/api/v1/puzzles/%d/download", puzzle.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("download status = %d, want 404", w.Code)
	}
}

func TestGetPuzzle(t *testing.T) {
	r := setupRouter(t)
	puzzle := createPuzzle(t, "2025-08-04", true)

	w := get(t, r, fmt.Sprintf("/api/v1/puzzles/%d", puzzle.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp PuzzleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.ID != puzzle.ID || resp.Date != "2025-08-04" || resp.Title != puzzle.Title {
		t.Fatalf("puzzle = %+v, want %+v", resp, puzzle)
	}
}

func TestGetPuzzleInvalidID(t *testing.T) {
	r := setupRouter(t)

	if w := get(t, r, "/api/v1/puzzles/not-a-number"); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if w := get(t, r, "/api/v1/puzzles/9999"); w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestGetPuzzleDownloadURL(t *testing.T) {
	r := setupRouter(t)
	puzzle := createPuzzle(t, "2025-08-05", true)

	w := get(t, r, fmt.Sprintf("/api/v1/puzzles/%d/download", puzzle.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if want := "https://storage.test/" + puzzle.StoragePath; resp["downloadUrl"] != want {
		t.Fatalf("downloadUrl = %q, want %q", resp["downloadUrl"], want)
	}
}

func TestListPuzzlesOnlyPublished(t *testing.T) {
	r := setupRouter(t)

	createPuzzle(t, "2025-08-06", true)
	createPuzzle(t, "2025-08-07", true)
	createPuzzle(t, "2025-08-08", false)

	w := get(t, r, "/api/v1/puzzles")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp []PuzzleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("listed %d puzzles, want 2 published", len(resp))
	}
	if resp[0].Date != "2025-08-07" || resp[1].Date != "2025-08-06" {
		t.Errorf("order = [%s, %s], want newest first", resp[0].Date, resp[1].Date)
	}
}
