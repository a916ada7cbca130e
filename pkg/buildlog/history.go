package buildlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxHistoryEntries caps the history file so it cannot grow unbounded.
const maxHistoryEntries = 100

// HistoryEntry is one build result in the dashboard's history feed. Unlike
// the per-distribution log, the history keeps only the most recent build per
// distribution.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Distribution string    `json:"distribution"`
	Timestamp    time.Time `json:"timestamp"`
	Success      bool      `json:"success"`
	ReturnCode   int       `json:"return_code"`
}

type historyFile struct {
	Builds []HistoryEntry `json:"builds"`
}

// History is a small JSON file of recent build results, used by the
// dashboard's stats and history endpoints.
type History struct {
	path string
	mu   sync.Mutex
}

func NewHistory(path string) *History {
	return &History{path: path}
}

// Add records a build result, replacing any previous entry for the same
// distribution, and assigns the entry an ID.
func (h *History) Add(entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Distribution != entry.Distribution {
			kept = append(kept, e)
		}
	}
	entry.ID = uuid.NewString()
	kept = append(kept, entry)

	if len(kept) > maxHistoryEntries {
		kept = kept[len(kept)-maxHistoryEntries:]
	}
	return h.save(kept)
}

// Entries returns all recorded builds, oldest first. A missing or corrupt
// history file reads as empty rather than failing the caller.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load()
	if err != nil {
		return nil
	}
	return entries
}

// Prune drops entries for distributions no longer in the registry.
func (h *History) Prune(configured []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load()
	if err != nil {
		return err
	}

	known := map[string]bool{}
	for _, name := range configured {
		known[name] = true
	}

	kept := entries[:0]
	for _, e := range entries {
		if known[e.Distribution] {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return h.save(kept)
}

func (h *History) load() ([]HistoryEntry, error) {
	contents, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read build history: %w", err)
	}
	var file historyFile
	if err := json.Unmarshal(contents, &file); err != nil {
		// A corrupt history is not worth failing a build over; start fresh.
		return nil, nil
	}
	return file.Builds, nil
}

func (h *History) save(entries []HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	contents, err := json.MarshalIndent(historyFile{Builds: entries}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(h.path), "history.*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), h.path)
}
