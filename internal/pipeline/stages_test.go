package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestSaveAndLoadStage(t *testing.T) {
	dataDir := t.TempDir()

	users := []models.EnrichedUser{
		{User: models.User{ID: "u1", FirstName: "Ana"}},
		{User: models.User{ID: "u2", FirstName: "Ben"}},
	}
	users[0].UserSegment = models.SegmentFresh

	path, err := SaveStage(dataDir, stageEnriched, fileEnrichedUsers, users)
	if err != nil {
		t.Fatalf("SaveStage returned error: %v", err)
	}
	if want := filepath.Join(dataDir, "enriched", "enriched_users.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	loaded, err := LoadStage[models.EnrichedUser](dataDir, stageEnriched, fileEnrichedUsers)
	if err != nil {
		t.Fatalf("LoadStage returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d users, want 2", len(loaded))
	}
	if loaded[0].ID != "u1" || loaded[0].FirstName != "Ana" || loaded[0].UserSegment != models.SegmentFresh {
		t.Errorf("loaded[0] = %+v, does not round-trip", loaded[0])
	}
}

func TestSaveStageWritesIndentedArray(t *testing.T) {
	dataDir := t.TempDir()

	path, err := SaveStage(dataDir, stageRaw, fileRawOrders, []models.Order{{ID: "o1"}})
	if err != nil {
		t.Fatalf("SaveStage returned error: %v", err)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stage file: %v", err)
	}
	content := string(payload)
	if !strings.HasPrefix(content, "[\n") {
		t.Errorf("stage file should hold a JSON array, got prefix %q", content[:1])
	}
	if !strings.Contains(content, "  {") {
		t.Error("stage file should be indented for operator inspection")
	}
}

func TestLoadStageMissingFile(t *testing.T) {
	if _, err := LoadStage[models.Order](t.TempDir(), stageRaw, fileRawOrders); err == nil {
		t.Fatal("expected error for missing stage file")
	}
}

func TestLoadStageRejectsMalformedPayload(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, stageRaw)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileRawOrders), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStage[models.Order](dataDir, stageRaw, fileRawOrders); err == nil {
		t.Fatal("expected decode error")
	}
}
