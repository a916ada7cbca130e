package dockerfile

import (
	"fmt"
	"strings"
)

const zypperRepoFile = "/etc/zypp/repos.d/mirror-test.repo"

// writeZypperStages writes all source lines verbatim inside a quoted heredoc.
// No per-line escaping happens here: the heredoc body is taken literally, and
// repo-file stanzas routinely contain characters the echo-append paths would
// have to escape.
func writeZypperStages(b *strings.Builder, sources []string, updateCommand string, testCommands []string) {
	b.WriteString("# Configure repositories\n")
	b.WriteString("RUN rm -f /etc/zypp/repos.d/* && \\\n")
	fmt.Fprintf(b, "    cat > %s << 'EOF'\n", zypperRepoFile)
	for _, source := range sources {
		b.WriteString(source + "\n")
	}
	b.WriteString("EOF\n\n")

	writeUpdateStage(b, updateCommand, "zypper --non-interactive refresh")
	writeTestStage(b, testCommands, []string{"zypper --non-interactive install -y zypper"})
}
