package dockerfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirror-tools/mirror-test/pkg/config"
)

func TestGenerateApk(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "alpine:3.19",
		PackageManager: "apk",
		Sources:        []string{"http://mirror.local/alpine/v3.19/main"},
	}

	script := Generate("alpine-test", dist, config.PackageManager{}, config.Variables{})

	require.True(t, strings.HasPrefix(script, "FROM alpine:3.19\n"))
	require.Contains(t, script, `echo "http://mirror.local/alpine/v3.19/main" >> /etc/apk/repositories`)
	require.Contains(t, script, "RUN apk update")
	require.Contains(t, script, "apk add --no-cache curl")
	require.Contains(t, script, "RUN echo 'All repository tests passed for alpine-test'")
}

func TestGenerateAptEscapesQuotes(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "debian:12",
		PackageManager: "apt",
		Sources: []string{
			"deb http://mirror.local/debian bookworm main",
			`deb [arch="amd64"] http://mirror.local/extra bookworm main`,
		},
	}

	script := Generate("debian-12", dist, config.PackageManager{}, config.Variables{})

	require.Contains(t, script, `echo "deb http://mirror.local/debian bookworm main" >> /etc/apt/sources.list`)
	require.Contains(t, script, `echo "deb [arch=\"amd64\"] http://mirror.local/extra bookworm main" >> /etc/apt/sources.list`)
	require.NotContains(t, script, `echo "deb [arch="amd64"]`)
	require.Contains(t, script, "rm -f /etc/apt/sources.list.d/*")
	require.Contains(t, script, `Acquire::Languages "none"`)
	require.Contains(t, script, "RUN apt-get update")
}

func TestGenerateAptSubstitutesVariables(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "debian:12",
		PackageManager: "apt",
		Sources:        []string{"deb ${MIRROR_BASE}/debian bookworm main"},
	}
	vars := config.Variables{
		"MIRROR_HOST": "mirror.local",
		"MIRROR_BASE": "http://${MIRROR_HOST}",
	}

	script := Generate("debian-12", dist, config.PackageManager{}, vars)
	require.Contains(t, script, `echo "deb http://mirror.local/debian bookworm main" >> /etc/apt/sources.list`)
	require.NotContains(t, script, "${MIRROR_BASE}")
	require.NotContains(t, script, "${MIRROR_HOST}")
}

func TestGenerateYumSplitsMultiLineStanza(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "rockylinux:9",
		PackageManager: "yum",
		Sources: []string{
			"[mirror-base]\nname=Mirror Base\nbaseurl=http://mirror.local/rocky/9/BaseOS/$basearch/os/\n\nenabled=1",
		},
	}

	script := Generate("rocky-9", dist, config.PackageManager{}, config.Variables{})

	// A 4-line stanza (plus one blank line) becomes 4 append operations.
	require.Equal(t, 4, strings.Count(script, ">> /etc/yum.repos.d/mirror-test.repo"))
	require.Contains(t, script, `echo "[mirror-base]" >> /etc/yum.repos.d/mirror-test.repo`)
	require.Contains(t, script, `echo "enabled=1" >> /etc/yum.repos.d/mirror-test.repo`)
	require.Contains(t, script, "export releasever=")
	require.Contains(t, script, "export basearch=$(uname -m)")
	require.Contains(t, script, "RUN yum makecache")
	require.Contains(t, script, "yum install -y yum-utils")
}

func TestGenerateDnfDefaults(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "fedora:39",
		PackageManager: "dnf",
		Sources:        []string{"[mirror]\nname=Mirror\nbaseurl=http://mirror.local/fedora/39/x86_64/\nenabled=1"},
	}

	script := Generate("fedora-39", dist, config.PackageManager{}, config.Variables{})
	require.Contains(t, script, "RUN dnf makecache")
	require.Contains(t, script, "dnf install -y dnf-utils")
}

func TestGenerateZypperHeredocIsVerbatim(t *testing.T) {
	stanza := "[mirror]\nname=Mirror \"quoted\"\nbaseurl=http://mirror.local/opensuse/\nenabled=1"
	dist := &config.Distribution{
		BaseImage:      "opensuse/leap:15.5",
		PackageManager: "zypper",
		Sources:        []string{stanza},
	}

	script := Generate("leap-15.5", dist, config.PackageManager{}, config.Variables{})

	require.Contains(t, script, "cat > /etc/zypp/repos.d/mirror-test.repo << 'EOF'\n"+stanza+"\nEOF")
	// Heredoc content is trusted config text, not quote-escaped.
	require.Contains(t, script, `Mirror "quoted"`)
	require.Contains(t, script, "RUN zypper --non-interactive refresh")
}

func TestGenerateUnknownKind(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "archlinux:latest",
		PackageManager: "pacman",
		Sources:        []string{"Server = http://mirror.local/archlinux/$repo/os/$arch"},
	}

	script := Generate("arch", dist, config.PackageManager{}, config.Variables{})
	require.NotEmpty(t, script)
	require.Contains(t, script, "Unknown package manager: pacman")
	require.Contains(t, script, "Cannot test - unknown package manager")
}

func TestGenerateMissingFieldsDegrade(t *testing.T) {
	// No base image, no package manager, no sources: still a valid script,
	// defaulting to the stock image and apt behavior.
	script := Generate("empty", &config.Distribution{}, config.PackageManager{}, config.Variables{})
	require.True(t, strings.HasPrefix(script, "FROM debian:12\n"))
	require.Contains(t, script, "RUN apt-get update")
	require.Contains(t, script, "RUN echo 'All repository tests passed for empty'")
}

func TestGenerateProfileCommands(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "debian:12",
		PackageManager: "apt",
		Sources:        []string{"deb http://mirror.local/debian bookworm main"},
	}
	profile := config.PackageManager{
		UpdateCommand: "apt-get update -o Acquire::Retries=3",
		TestCommands:  []string{"apt-get install -y --no-install-recommends curl", "apt-cache stats"},
	}

	script := Generate("debian-12", dist, profile, config.Variables{})
	require.Contains(t, script, "RUN apt-get update -o Acquire::Retries=3")
	require.Contains(t, script, "apt-get install -y --no-install-recommends curl && \\")
	require.Contains(t, script, "apt-cache stats && \\")
	require.Contains(t, script, "echo 'Repository test successful'")
}

func TestGenerateDistributionOverridesProfile(t *testing.T) {
	dist := &config.Distribution{
		BaseImage:      "debian:12",
		PackageManager: "apt",
		Sources:        []string{"deb http://mirror.local/debian bookworm main"},
		TestCommands:   []string{"apt-get install -y ${PKG}"},
	}
	profile := config.PackageManager{
		TestCommands: []string{"apt-cache stats"},
	}
	vars := config.Variables{"PKG": "vim-tiny"}

	script := Generate("debian-12", dist, profile, vars)
	require.Contains(t, script, "apt-get install -y vim-tiny && \\")
	require.NotContains(t, script, "apt-cache stats")
}

func TestGenerateFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	script, err := GenerateFromConfig(cfg, "debian-12")
	require.NoError(t, err)
	require.Contains(t, script, "FROM debian:12")

	_, err = GenerateFromConfig(cfg, "missing")
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in   string
		want Kind
	}{
		{"apt", KindApt},
		{"yum", KindYum},
		{"dnf", KindDnf},
		{"zypper", KindZypper},
		{"apk", KindApk},
		{"pacman", KindUnknown},
		{"", KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, ParseKind(tc.in))
		})
	}
}
