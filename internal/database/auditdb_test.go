package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nao1215/noticegen/internal/model"
)

// testReport builds a report with the given entry names.
func testReport(t *testing.T, generatedAt time.Time, names ...string) *model.NoticeReport {
	t.Helper()
	records := make([]model.DependencyRecord, 0, len(names))
	for _, name := range names {
		records = append(records, model.DependencyRecord{
			Name:     name,
			Version:  "1.0.0",
			Source:   model.EcosystemCargo,
			Licenses: []string{"MIT"},
		})
	}
	return model.NewNoticeReport(records, generatedAt)
}

// TestOpen verifies database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database when allowed", func(t *testing.T) {
		t.Parallel()
		db, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer db.Close()
	})

	t.Run("missing database is an error when creation disabled", func(t *testing.T) {
		t.Parallel()
		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

// TestSaveAndLoadRuns verifies the save/list/get round trip.
func TestSaveAndLoadRuns(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	firstID, err := db.SaveRun(ctx, "/proj", testReport(t, base, "serde"))
	if err != nil {
		t.Fatalf("failed to save first run: %v", err)
	}
	secondID, err := db.SaveRun(ctx, "/proj", testReport(t, base.Add(time.Hour), "serde", "tokio"))
	if err != nil {
		t.Fatalf("failed to save second run: %v", err)
	}
	if _, err := db.SaveRun(ctx, "/other", testReport(t, base, "lodash")); err != nil {
		t.Fatalf("failed to save other project's run: %v", err)
	}

	t.Run("GetRun returns entries", func(t *testing.T) {
		run, err := db.GetRun(ctx, firstID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if run.ProjectDir != "/proj" {
			t.Errorf("unexpected project dir: %q", run.ProjectDir)
		}
		if len(run.Entries) != 1 || run.Entries[0].Name != "serde" {
			t.Errorf("unexpected entries: %v", run.Entries)
		}
	})

	t.Run("GetRun unknown ID returns ErrRunNotFound", func(t *testing.T) {
		if _, err := db.GetRun(ctx, 9999); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("LatestRuns returns newest first and filters by project", func(t *testing.T) {
		runs, err := db.LatestRuns(ctx, "/proj", 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected two runs, got %d", len(runs))
		}
		if runs[0].ID != secondID || runs[1].ID != firstID {
			t.Errorf("expected newest first, got IDs %d, %d", runs[0].ID, runs[1].ID)
		}
		if len(runs[0].Entries) != 2 {
			t.Errorf("expected two entries in the latest run, got %d", len(runs[0].Entries))
		}
	})

	t.Run("ListRuns summarizes without entries", func(t *testing.T) {
		summaries, err := db.ListRuns(ctx, "/proj")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected two summaries, got %d", len(summaries))
		}
		if summaries[0].EntryCount != 2 || summaries[1].EntryCount != 1 {
			t.Errorf("unexpected entry counts: %+v", summaries)
		}
	})
}
