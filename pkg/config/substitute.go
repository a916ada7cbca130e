package config

import (
	"strings"
)

// maxSubstitutionPasses bounds nested variable expansion. Cyclic definitions
// (A -> ${B}, B -> ${A}) stabilize on whatever partial expansion exists after
// the last pass instead of looping forever.
const maxSubstitutionPasses = 10

// Substitute replaces every ${NAME} occurrence in text with the table value,
// repeating until a pass changes nothing or the pass bound is hit. Unresolved
// tokens are left in place: a misconfigured variable must not abort an
// otherwise valid build.
func Substitute(text string, vars Variables) string {
	for i := 0; i < maxSubstitutionPasses; i++ {
		before := text
		for name, value := range vars {
			text = strings.ReplaceAll(text, "${"+name+"}", value)
		}
		if text == before {
			break
		}
	}
	return text
}

// Substitute applies the config's variable table to text.
func (c *Config) Substitute(text string) string {
	return Substitute(text, c.Variables)
}
