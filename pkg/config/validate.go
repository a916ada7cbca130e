package config

import (
	"fmt"
	"sort"
)

// Validate checks the registry structure. Errors are problems that will make
// a distribution untestable; warnings are informational notes about what was
// found.
func (c *Config) Validate() (errs []string, warnings []string) {
	if len(c.Variables) == 0 {
		warnings = append(warnings, "no variables section found")
	} else {
		warnings = append(warnings, fmt.Sprintf("%d variables defined", len(c.Variables)))
	}

	if len(c.PackageManagers) == 0 {
		warnings = append(warnings, "no package-managers section found")
	} else {
		kinds := make([]string, 0, len(c.PackageManagers))
		for kind := range c.PackageManagers {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		warnings = append(warnings, fmt.Sprintf("package-manager profiles: %v", kinds))
	}

	names := c.DistributionNames()
	if len(names) == 0 {
		warnings = append(warnings, "no distributions configured")
		return errs, warnings
	}
	warnings = append(warnings, fmt.Sprintf("%d distributions configured", len(names)))

	for _, name := range names {
		dist := c.Distributions[name]
		missing := missingFields(dist)
		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("%s missing fields: %v", name, missing))
		} else {
			warnings = append(warnings, fmt.Sprintf("%s configuration valid", name))
		}
	}
	return errs, warnings
}

func missingFields(dist *Distribution) []string {
	var missing []string
	if dist.BaseImage == "" && dist.Pull == "" {
		missing = append(missing, "base-image")
	}
	if dist.PackageManager == "" {
		missing = append(missing, "package-manager")
	}
	if len(dist.Sources) == 0 {
		missing = append(missing, "sources")
	}
	return missing
}
