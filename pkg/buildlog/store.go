package buildlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mirror-tools/mirror-test/pkg/errors"
	"github.com/mirror-tools/mirror-test/pkg/util/files"
)

// Store keeps one append-only log file per distribution plus a "latest"
// marker holding the most recent record. The marker is published with a
// write-then-rename so a concurrent reader never sees a half-written record.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) logPath(dist string) string {
	return filepath.Join(s.dir, dist+".log")
}

func (s *Store) latestPath(dist string) string {
	return filepath.Join(s.dir, dist+"_latest.log")
}

// Append writes the record to the distribution's append-only log and
// atomically repoints the latest marker at it.
func (s *Store) Append(record *Record) error {
	block := record.Format()

	f, err := os.OpenFile(s.logPath(record.Distribution), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log for %s: %w", record.Distribution, err)
	}
	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return fmt.Errorf("failed to append log for %s: %w", record.Distribution, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return s.publishLatest(record.Distribution, block)
}

func (s *Store) publishLatest(dist, block string) error {
	tmp, err := os.CreateTemp(s.dir, dist+"_latest.*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(block); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	// Same-directory rename: atomic publish of the completed record.
	return os.Rename(tmp.Name(), s.latestPath(dist))
}

// Latest returns the most recent record for a distribution, parsed back out
// of its on-disk representation.
func (s *Store) Latest(dist string) (*Record, error) {
	contents, err := os.ReadFile(s.latestPath(dist))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.LogsNotFound(fmt.Sprintf("no logs found for %s", dist))
		}
		return nil, fmt.Errorf("error reading log for %s: %w", dist, err)
	}

	record, err := Parse(string(contents))
	if err != nil {
		return nil, fmt.Errorf("error reading log for %s: %w", dist, err)
	}
	return record, nil
}

// HasLogs reports whether any build has been recorded for a distribution.
func (s *Store) HasLogs(dist string) bool {
	exists, err := files.Exists(s.latestPath(dist))
	return err == nil && exists
}

// FullLog returns the entire append-only log text for a distribution.
func (s *Store) FullLog(dist string) (string, error) {
	contents, err := os.ReadFile(s.logPath(dist))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.LogsNotFound(fmt.Sprintf("no logs found for %s", dist))
		}
		return "", fmt.Errorf("error reading log for %s: %w", dist, err)
	}
	return string(contents), nil
}
