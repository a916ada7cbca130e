package dockerfile

import (
	"fmt"
	"strings"
)

const rpmRepoFile = "/etc/yum.repos.d/mirror-test.repo"

// writeRPMStages covers both yum and dnf. Repo URLs in the wild interpolate
// $releasever and $basearch, so both are exported from the running system
// before the repo file is written. A source line containing embedded newlines
// is a pre-formatted repo stanza: each non-empty inner line is appended
// individually.
func writeRPMStages(b *strings.Builder, kind Kind, sources []string, updateCommand string, testCommands []string) {
	b.WriteString("# Configure repositories\n")
	b.WriteString("RUN rm -f /etc/yum.repos.d/* && \\\n")
	b.WriteString("    export releasever=$(rpm -q --qf '%{VERSION}' $(rpm -q --whatprovides redhat-release)) && \\\n")
	b.WriteString("    export basearch=$(uname -m) && \\\n")
	for _, source := range sources {
		for _, line := range strings.Split(source, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(b, "    echo \"%s\" >> %s && \\\n", escapeQuotes(line), rpmRepoFile)
		}
	}
	fmt.Fprintf(b, "    cat %s\n\n", rpmRepoFile)

	update := "yum makecache"
	builtin := "yum install -y yum-utils"
	if kind == KindDnf {
		update = "dnf makecache"
		builtin = "dnf install -y dnf-utils"
	}
	writeUpdateStage(b, updateCommand, update)
	writeTestStage(b, testCommands, []string{builtin})
}
