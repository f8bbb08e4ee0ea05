package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Stage directories under the configured data dir. Each pipeline step writes
// its output as a JSON array so later steps and operators can replay from
// disk without re-querying the database.
const (
	stageRaw       = "raw"
	stageQualified = "qualified"
	stageEnriched  = "enriched"
	stageMatched   = "matched"
)

const (
	fileRawUsers          = "users.json"
	fileRawEvents         = "events.json"
	fileRawOrders         = "orders.json"
	fileQualifiedUsers    = "qualified_users.json"
	fileQualifiedEvents   = "qualified_events.json"
	fileEnrichedUsers     = "enriched_users.json"
	fileEnrichedEvents    = "enriched_events.json"
	fileProcessedMessages = "processed_messages.json"
)

// SaveStage writes items as an indented JSON array under dataDir/stage/name.
// The write goes through a temp file and rename so a crashed run never leaves
// a truncated stage file behind.
func SaveStage[T any](dataDir, stage, name string, items []T) (string, error) {
	dir := filepath.Join(dataDir, stage)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create stage dir %s: %w", dir, err)
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replace %s: %w", path, err)
	}
	return path, nil
}

// LoadStage reads a JSON array previously written by SaveStage.
func LoadStage[T any](dataDir, stage, name string) ([]T, error) {
	path := filepath.Join(dataDir, stage, name)
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}
