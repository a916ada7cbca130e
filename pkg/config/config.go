package config

import (
	"sort"
)

// Variables is the flat table used for ${NAME} substitution in source lines
// and test commands.
type Variables map[string]string

// PackageManager is a per-kind profile: how to refresh the package cache and
// which commands prove the mirror actually serves packages.
type PackageManager struct {
	UpdateCommand string   `yaml:"update-command"`
	TestCommands  []string `yaml:"test-commands"`
}

// Distribution is one named target to test: a base image, a package-manager
// kind and the repository source lines to install into the container.
type Distribution struct {
	BaseImage      string   `yaml:"base-image"`
	Pull           string   `yaml:"pull,omitempty"` // legacy alias for base-image
	PackageManager string   `yaml:"package-manager"`
	Sources        []string `yaml:"sources"`
	TestCommands   []string `yaml:"test-commands,omitempty"`
}

// Image returns the base image reference, falling back through the legacy
// `pull` key to a hardcoded default.
func (d *Distribution) Image() string {
	if d.BaseImage != "" {
		return d.BaseImage
	}
	if d.Pull != "" {
		return d.Pull
	}
	return "debian:12"
}

// Config is the full registry: variables, package-manager profiles and
// distributions. Constructed once at startup and passed by reference; there
// is no ambient global configuration.
type Config struct {
	Variables       Variables                 `yaml:"variables"`
	PackageManagers map[string]PackageManager `yaml:"package-managers"`
	Distributions   map[string]*Distribution  `yaml:"distributions"`

	filename string
}

// Filename returns the path the config was loaded from.
func (c *Config) Filename() string {
	return c.filename
}

// DistributionNames returns the configured distribution names in sorted
// order, which is also the order batch test runs execute in.
func (c *Config) DistributionNames() []string {
	names := make([]string, 0, len(c.Distributions))
	for name := range c.Distributions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Distribution looks up one distribution, or nil.
func (c *Config) Distribution(name string) *Distribution {
	return c.Distributions[name]
}

// PackageManager returns the profile for a kind. A missing profile is valid:
// the generator falls back to per-kind built-in defaults.
func (c *Config) PackageManager(kind string) PackageManager {
	return c.PackageManagers[kind]
}

// DefaultConfig is the registry written when no config file exists yet. It
// points at well-known public mirrors so a fresh install has something that
// builds.
func DefaultConfig() *Config {
	return &Config{
		Variables: Variables{
			"MIRROR_HOST":  "mirror.local",
			"MIRROR_PROTO": "http",
			"MIRROR_BASE":  "${MIRROR_PROTO}://${MIRROR_HOST}",
			"GPG_CHECK":    "0",
		},
		PackageManagers: map[string]PackageManager{
			"apt": {
				UpdateCommand: "apt-get update",
				TestCommands: []string{
					"apt-get install -y --no-install-recommends curl wget",
					"apt-cache stats",
				},
			},
			"dnf": {
				UpdateCommand: "dnf makecache",
				TestCommands: []string{
					"dnf install -y curl wget",
					"dnf repolist",
				},
			},
		},
		Distributions: map[string]*Distribution{
			"debian-12": {
				BaseImage:      "debian:12",
				PackageManager: "apt",
				Sources: []string{
					"deb ${MIRROR_BASE}/debian bookworm main",
					"deb ${MIRROR_BASE}/debian bookworm-updates main",
					"deb ${MIRROR_BASE}/debian-security bookworm-security main",
				},
			},
			"alpine-3.19": {
				BaseImage:      "alpine:3.19",
				PackageManager: "apk",
				Sources: []string{
					"${MIRROR_BASE}/alpine/v3.19/main",
					"${MIRROR_BASE}/alpine/v3.19/community",
				},
			},
		},
	}
}
