package buildlog

import (
	"strings"
)

// Outcome is the derived pass/fail state of a build log, plus the first line
// that matched a failure phrase when one did.
type Outcome struct {
	Passed    bool
	ErrorLine string
}

// Failure phrases win over success phrases: a log can contain an early
// success echo followed by a later unrelated failure, and the final state is
// what matters.
var failurePhrases = []string{
	"exit code: 1",
	"exit code: 2",
	"exit code: 100",
	"exit code: 127",
	"return code: 1",
	"return code: 2",
	"return code: 100",
	"return code: 127",
	"build failed",
	"fatal error",
	"error building at step",
	"error: building",
	"executor failed running",
	"cannot test - unknown package manager",
	"build timeout after",
	"cannot connect to the docker daemon",
	"cannot connect to podman",
}

var successPhrases = []string{
	"all repository tests passed",
	"repository test successful",
	"exit code: 0",
	"return code: 0",
	"build complete",
	"successfully built",
	"successfully tagged",
}

// Container-level error markers checked in the last resort pass.
var errorMarkers = []string{
	"error response from daemon",
	"no such image",
	"failed to solve",
}

// Completion phrases that, near the end of a log, indicate the build ran all
// the way through.
var completionPhrases = []string{
	"writing image",
	"commit",
	"finished",
	"storing signatures",
}

const tailLines = 15

// Classify derives a pass/fail outcome from raw log text. It is the fallback
// for records lacking a structured return code; indeterminate text classifies
// as FAILURE (fail closed).
func Classify(text string) Outcome {
	lower := strings.ToLower(text)

	for _, phrase := range failurePhrases {
		if strings.Contains(lower, phrase) {
			return Outcome{Passed: false, ErrorLine: firstLineContaining(text, phrase)}
		}
	}

	for _, phrase := range successPhrases {
		if strings.Contains(lower, phrase) {
			return Outcome{Passed: true}
		}
	}

	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			return Outcome{Passed: false, ErrorLine: firstLineContaining(text, marker)}
		}
	}

	for _, phrase := range completionPhrases {
		if strings.Contains(tail(lower, tailLines), phrase) {
			return Outcome{Passed: true}
		}
	}

	return Outcome{Passed: false}
}

func firstLineContaining(text, loweredPhrase string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToLower(line), loweredPhrase) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func tail(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
