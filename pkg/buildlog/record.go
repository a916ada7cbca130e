// Package buildlog persists build attempts as append-only, human-readable
// log records and derives pass/fail outcomes from them.
package buildlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	buildMarker      = "=== Build "
	buildMarkerEnd   = " ==="
	dockerfileMarker = "--- DOCKERFILE ---"
	stdoutMarker     = "--- STDOUT ---"
	stderrMarker     = "--- STDERR ---"
	endMarker        = "=== End ==="
)

// Record is the persisted outcome of one build attempt. The return code is
// always present for records this tool writes; HasReturnCode is false only
// for legacy records imported from older log formats, which fall back to
// text classification.
type Record struct {
	Distribution  string
	Timestamp     time.Time
	ReturnCode    int
	HasReturnCode bool
	Dockerfile    string
	Stdout        string
	Stderr        string

	// Raw is the on-disk text this record was parsed from, empty for records
	// built in-process.
	Raw string
}

// Passed reports the record's outcome. The structured return code is ground
// truth; the heuristic classifier is consulted only when a record lacks one.
func (r *Record) Passed() bool {
	if r.HasReturnCode {
		return r.ReturnCode == 0
	}
	return Classify(r.text()).Passed
}

func (r *Record) text() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Format()
}

// Format renders the record as the on-disk block. Each section is terminated
// by exactly one newline before the next marker, so Parse can recover the
// section contents byte-for-byte.
func (r *Record) Format() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s%s%s\n", buildMarker, r.Timestamp.Format(time.RFC3339), buildMarkerEnd)
	fmt.Fprintf(b, "Distribution: %s\n", r.Distribution)
	fmt.Fprintf(b, "Return code: %d\n", r.ReturnCode)
	b.WriteString(dockerfileMarker + "\n")
	b.WriteString(r.Dockerfile)
	b.WriteString("\n" + stdoutMarker + "\n")
	b.WriteString(r.Stdout)
	b.WriteString("\n" + stderrMarker + "\n")
	b.WriteString(r.Stderr)
	b.WriteString("\n" + endMarker + "\n")
	return b.String()
}

// Parse reads a record block back into its fields. A block missing the
// "Return code:" header still parses, with HasReturnCode false.
func Parse(text string) (*Record, error) {
	record := &Record{Raw: text}

	header, rest, err := cutSection(text, dockerfileMarker)
	if err != nil {
		return nil, err
	}
	record.Dockerfile, rest, err = cutSection(rest, "\n"+stdoutMarker)
	if err != nil {
		return nil, err
	}
	record.Stdout, rest, err = cutSection(rest, "\n"+stderrMarker)
	if err != nil {
		return nil, err
	}
	record.Stderr, _, err = cutSection(rest, "\n"+endMarker)
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(header, "\n") {
		switch {
		case strings.HasPrefix(line, buildMarker):
			stamp := strings.TrimSuffix(strings.TrimPrefix(line, buildMarker), buildMarkerEnd)
			if t, err := time.Parse(time.RFC3339, stamp); err == nil {
				record.Timestamp = t
			}
		case strings.HasPrefix(line, "Distribution: "):
			record.Distribution = strings.TrimPrefix(line, "Distribution: ")
		case strings.HasPrefix(line, "Return code: "):
			code, err := strconv.Atoi(strings.TrimPrefix(line, "Return code: "))
			if err != nil {
				return nil, fmt.Errorf("malformed return code line: %q", line)
			}
			record.ReturnCode = code
			record.HasReturnCode = true
		}
	}

	return record, nil
}

// cutSection splits text at the first occurrence of the marker, returning
// the content before it and the remainder after the marker's trailing
// newline.
func cutSection(text, marker string) (section, rest string, err error) {
	i := strings.Index(text, marker+"\n")
	if i < 0 {
		return "", "", fmt.Errorf("malformed build record: missing %q", strings.TrimSpace(marker))
	}
	return text[:i], text[i+len(marker)+1:], nil
}
