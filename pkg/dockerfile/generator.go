// Package dockerfile synthesizes the container build scripts used to test a
// distribution's repository mirror.
package dockerfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/mirror-tools/mirror-test/pkg/config"
	"github.com/mirror-tools/mirror-test/pkg/errors"
)

// Generate synthesizes the build script for one distribution. It always
// returns a non-empty script and never fails: a missing base image degrades
// to the default image, an absent package-manager field behaves like apt, and
// an unrecognized kind produces a script that reports its own untestability.
func Generate(name string, dist *config.Distribution, profile config.PackageManager, vars config.Variables) string {
	kind := resolveKind(dist.PackageManager)

	b := &strings.Builder{}
	fmt.Fprintf(b, "FROM %s\n\n", dist.Image())
	fmt.Fprintf(b, "# Mirror test for %s\n", name)
	fmt.Fprintf(b, "# Generated at %s\n\n", time.Now().Format(time.RFC3339))

	sources := make([]string, 0, len(dist.Sources))
	for _, source := range dist.Sources {
		sources = append(sources, config.Substitute(source, vars))
	}

	// Distribution test commands override the profile's defaults. The
	// per-kind built-in smoke test applies when both are empty.
	commands := dist.TestCommands
	if len(commands) == 0 {
		commands = profile.TestCommands
	}
	substituted := make([]string, 0, len(commands))
	for _, cmd := range commands {
		substituted = append(substituted, config.Substitute(cmd, vars))
	}

	switch kind {
	case KindApt:
		writeAptStages(b, sources, profile.UpdateCommand, substituted)
	case KindYum, KindDnf:
		writeRPMStages(b, kind, sources, profile.UpdateCommand, substituted)
	case KindZypper:
		writeZypperStages(b, sources, profile.UpdateCommand, substituted)
	case KindApk:
		writeApkStages(b, sources, profile.UpdateCommand, substituted)
	default:
		writeUnknownStage(b, dist.PackageManager)
	}

	b.WriteString("\n# Final validation\n")
	fmt.Fprintf(b, "RUN echo 'All repository tests passed for %s'\n", name)
	return b.String()
}

// GenerateFromConfig resolves a distribution from the registry and generates
// its script. The only possible failure is an unknown distribution name.
func GenerateFromConfig(cfg *config.Config, name string) (string, error) {
	dist := cfg.Distribution(name)
	if dist == nil {
		return "", errors.DistributionNotFound(fmt.Sprintf("distribution %s not found in configuration", name))
	}
	return Generate(name, dist, cfg.PackageManager(dist.PackageManager), cfg.Variables), nil
}

// resolveKind distinguishes an absent package-manager field (historical
// default: apt) from a present but unrecognized one (unsupported script).
func resolveKind(s string) Kind {
	if s == "" {
		return KindApt
	}
	return ParseKind(s)
}

func writeUnknownStage(b *strings.Builder, kind string) {
	fmt.Fprintf(b, "# Unknown package manager: %s\n", kind)
	b.WriteString("RUN echo 'Cannot test - unknown package manager' && exit 1\n")
}

func writeUpdateStage(b *strings.Builder, updateCommand, fallback string) {
	b.WriteString("# Update package lists\n")
	if updateCommand == "" {
		updateCommand = fallback
	}
	fmt.Fprintf(b, "RUN %s\n\n", updateCommand)
}

func writeTestStage(b *strings.Builder, commands, builtin []string) {
	header := "# Run test commands\n"
	if len(commands) == 0 {
		commands = builtin
		header = "# Basic repository test\n"
	}
	b.WriteString(header)
	b.WriteString("RUN ")
	for _, cmd := range commands {
		b.WriteString(cmd + " && \\\n    ")
	}
	b.WriteString("echo 'Repository test successful'\n")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
