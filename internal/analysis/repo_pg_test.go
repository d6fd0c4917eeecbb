package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:           "analysis-1",
		UserID:       "google:u1",
		AnalysisType: "comprehensive",
		Provider:     "gemini",
		Score:        82,
		Metadata:     Metadata{ProcessingTime: 910, ResumeSections: 4},
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			sqlmock.AnyArg(), // resume_data
			sqlmock.AnyArg(), // result
			analysis.AnalysisType,
			analysis.Provider,
			analysis.Score,
			sqlmock.AnyArg(), // metadata
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func pgAnalysisRows(t *testing.T, analyses ...Analysis) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "resume_data", "result", "analysis_type", "provider", "score", "metadata", "created_at",
	})
	for _, a := range analyses {
		snapshot, err := json.Marshal(a.Snapshot)
		if err != nil {
			t.Fatalf("marshal snapshot: %v", err)
		}
		result, err := json.Marshal(a.Result)
		if err != nil {
			t.Fatalf("marshal result: %v", err)
		}
		metadata, err := json.Marshal(a.Metadata)
		if err != nil {
			t.Fatalf("marshal metadata: %v", err)
		}
		rows.AddRow(a.ID, a.UserID, snapshot, result, a.AnalysisType, a.Provider, a.Score, string(metadata), a.CreatedAt)
	}
	return rows
}

func TestPGRepoGetByIDScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	stored := Analysis{
		ID:           "analysis-1",
		UserID:       "google:u1",
		AnalysisType: "ats",
		Provider:     "openai",
		Score:        74,
		Metadata:     Metadata{ProcessingTime: 420},
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectQuery("SELECT id, user_id, resume_data").
		WithArgs(stored.ID, stored.UserID).
		WillReturnRows(pgAnalysisRows(t, stored))

	got, err := repo.GetByID(context.Background(), stored.UserID, stored.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Score != 74 || got.Provider != "openai" || got.Metadata.ProcessingTime != 420 {
		t.Fatalf("got = %+v", got)
	}

	mock.ExpectQuery("SELECT id, user_id, resume_data").
		WithArgs(stored.ID, "google:other").
		WillReturnRows(pgAnalysisRows(t))

	if _, err := repo.GetByID(context.Background(), "google:other", stored.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	newer := Analysis{ID: "a2", UserID: "google:u1", Score: 80, CreatedAt: now}
	older := Analysis{ID: "a1", UserID: "google:u1", Score: 60, CreatedAt: now.Add(-time.Hour)}

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("google:u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT id, user_id, resume_data").
		WithArgs("google:u1", 10, 0).
		WillReturnRows(pgAnalysisRows(t, newer, older))

	list, total, err := repo.ListByUser(context.Background(), "google:u1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(list))
	}
	if list[0].ID != "a2" {
		t.Fatalf("expected newest first, got %s", list[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoPurgeExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	cutoff := time.Now().UTC().Add(-Retention)

	mock.ExpectExec("DELETE FROM analyses").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	purged, err := repo.PurgeExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 3 {
		t.Fatalf("purged = %d, want 3", purged)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
