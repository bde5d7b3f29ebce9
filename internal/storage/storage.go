package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
	"github.com/pfrederiksen/gram-events/internal/logger"
)

const (
	snapshotFile = "events.json"
	reportFile   = "events.txt"
)

// Snapshot is the persisted form of an extraction run.
type Snapshot struct {
	Events    []*event.Event `json:"events"`
	UpdatedAt string         `json:"updated_at"` // RFC3339
}

// Storage handles persistence of event snapshots and reports
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
// A leading ~/ expands to the user's home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// SnapshotPath returns the JSON snapshot location.
func (s *Storage) SnapshotPath() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// ReportPath returns the text report location.
func (s *Storage) ReportPath() string {
	return filepath.Join(s.dataDir, reportFile)
}

// LoadSnapshot reads the persisted snapshot. A missing file yields an empty
// snapshot. A file that cannot be parsed also yields an empty snapshot, with
// a warning logged: readers must degrade to an empty list, never fail.
func (s *Storage) LoadSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(s.SnapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{Events: []*event.Event{}}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn("snapshot unreadable, starting empty", logger.Fields{
			"path":  s.SnapshotPath(),
			"error": err.Error(),
		})
		return &Snapshot{Events: []*event.Event{}}, nil
	}
	if snapshot.Events == nil {
		snapshot.Events = []*event.Event{}
	}
	return &snapshot, nil
}

// SaveSnapshot writes the JSON snapshot and the text report.
func (s *Storage) SaveSnapshot(events []*event.Event) error {
	snapshot := &Snapshot{
		Events:    events,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.SnapshotPath(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	report, err := os.Create(s.ReportPath())
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer report.Close()
	if err := WriteReport(report, events); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// IsStale reports whether the snapshot is missing or older than maxAge.
func (s *Storage) IsStale(maxAge time.Duration) bool {
	info, err := os.Stat(s.SnapshotPath())
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > maxAge
}
