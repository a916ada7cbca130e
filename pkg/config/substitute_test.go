package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	vars := Variables{
		"MIRROR_HOST": "mirror.local",
		"MIRROR_BASE": "http://${MIRROR_HOST}",
	}

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Simple",
			text:     "deb http://${MIRROR_HOST}/debian bookworm main",
			expected: "deb http://mirror.local/debian bookworm main",
		},
		{
			name:     "Nested",
			text:     "deb ${MIRROR_BASE}/debian bookworm main",
			expected: "deb http://mirror.local/debian bookworm main",
		},
		{
			name:     "Unresolved",
			text:     "deb ${NOT_DEFINED}/debian bookworm main",
			expected: "deb ${NOT_DEFINED}/debian bookworm main",
		},
		{
			name:     "NoTokens",
			text:     "deb http://deb.debian.org/debian bookworm main",
			expected: "deb http://deb.debian.org/debian bookworm main",
		},
		{
			name:     "Empty",
			text:     "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Substitute(tc.text, vars))
		})
	}
}

func TestSubstituteIsIdempotent(t *testing.T) {
	vars := Variables{
		"A": "${B}/a",
		"B": "${C}/b",
		"C": "value",
	}
	text := "x ${A} y ${B} z ${C}"

	once := Substitute(text, vars)
	twice := Substitute(once, vars)
	require.Equal(t, once, twice)
	require.Equal(t, "x value/b/a y value/b z value", once)
}

func TestSubstituteCyclicTerminates(t *testing.T) {
	vars := Variables{
		"A": "${B}",
		"B": "${A}",
	}

	// The result is whatever partial expansion exists after the pass bound;
	// what matters is termination and that a token remains visible.
	result := Substitute("${A}", vars)
	require.True(t, strings.Contains(result, "${A}") || strings.Contains(result, "${B}"))
}

func TestSubstituteSelfReference(t *testing.T) {
	vars := Variables{
		"LOOP": "x${LOOP}",
	}
	result := Substitute("${LOOP}", vars)
	require.Contains(t, result, "${LOOP}")
	require.Equal(t, strings.Repeat("x", 10)+"${LOOP}", result)
}
