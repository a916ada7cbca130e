package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"

	"github.com/mirror-tools/mirror-test/pkg/errors"
	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
	"github.com/mirror-tools/mirror-test/pkg/util/files"
)

// DefaultConfigPath returns ~/.config/mirror-test/mirror-test.yaml.
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mirror-test", global.ConfigFilename), nil
}

// Load reads the registry from path, or from the default location when path
// is empty. A missing default config is created on first use; a missing
// explicit --config path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	exists, err := files.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		if explicit {
			return nil, errors.ConfigNotFound(fmt.Sprintf("%s does not exist", path))
		}
		if err := writeDefaultConfig(path); err != nil {
			return nil, err
		}
		console.Infof("Created default configuration at %s", path)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigNotFound(fmt.Sprintf("failed to read %s: %s", path, err))
	}

	config, err := FromYAML(contents)
	if err != nil {
		return nil, err
	}
	config.filename = path
	return config, nil
}

// FromYAML parses a registry document. Two layouts are accepted: the
// structured one with `variables` / `package-managers` / `distributions`
// sections, and the legacy flat one where every top-level key except
// `variables` and `package-managers` is a distribution.
func FromYAML(contents []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Distributions == nil {
		flat, err := legacyDistributions(contents)
		if err != nil {
			return nil, err
		}
		config.Distributions = flat
	}
	if config.Variables == nil {
		config.Variables = Variables{}
	}
	if config.PackageManagers == nil {
		config.PackageManagers = map[string]PackageManager{}
	}
	return config, nil
}

// legacyDistributions normalizes the flat layout, where distributions sit at
// the top level next to (optional) variables and package-managers sections.
func legacyDistributions(contents []byte) (map[string]*Distribution, error) {
	var raw map[string]yaml.MapSlice
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	dists := map[string]*Distribution{}
	for name, value := range raw {
		if name == "variables" || name == "package-managers" || name == "distributions" {
			continue
		}
		encoded, err := yaml.Marshal(value)
		if err != nil {
			return nil, err
		}
		dist := &Distribution{}
		if err := yaml.Unmarshal(encoded, dist); err != nil {
			return nil, fmt.Errorf("failed to parse distribution %s: %w", name, err)
		}
		dists[name] = dist
	}
	return dists, nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	contents, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0o644)
}
