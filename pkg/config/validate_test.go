package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCompleteConfig(t *testing.T) {
	errs, warnings := DefaultConfig().Validate()
	require.Empty(t, errs)
	require.NotEmpty(t, warnings)
}

func TestValidateMissingFields(t *testing.T) {
	config := &Config{
		Distributions: map[string]*Distribution{
			"broken": {PackageManager: "apt"},
		},
	}

	errs, _ := config.Validate()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "broken missing fields")
	require.Contains(t, errs[0], "base-image")
	require.Contains(t, errs[0], "sources")
}

func TestValidateLegacyPullCountsAsBaseImage(t *testing.T) {
	config := &Config{
		Distributions: map[string]*Distribution{
			"ubuntu": {
				Pull:           "ubuntu:22.04",
				PackageManager: "apt",
				Sources:        []string{"deb http://mirror.local/ubuntu jammy main"},
			},
		},
	}

	errs, _ := config.Validate()
	require.Empty(t, errs)
}
