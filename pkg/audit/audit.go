// Package audit appends security-relevant events to a JSON-lines log.
package audit

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

type Event struct {
	Time    time.Time         `json:"time"`
	User    string            `json:"user,omitempty"`
	Action  string            `json:"action"`
	Success bool              `json:"success"`
	Details map[string]string `json:"details,omitempty"`
}

// Logger appends events to a file, one JSON object per line. The zero-value
// path disables logging entirely.
type Logger struct {
	path string
	mu   sync.Mutex
}

func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Log appends one event. The timestamp is filled in if unset.
func (l *Logger) Log(event Event) error {
	if l == nil || l.path == "" {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	line, err := json.Marshal(event)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Events reads the whole log back. Lines that fail to parse are skipped so a
// partially written tail never breaks readers.
func (l *Logger) Events() ([]Event, error) {
	if l == nil || l.path == "" {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var events []Event
	start := 0
	for i := 0; i <= len(data); i++ {
		if i != len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1
		if len(line) == 0 {
			continue
		}
		var event Event
		if json.Unmarshal(line, &event) == nil {
			events = append(events, event)
		}
	}
	return events, nil
}
