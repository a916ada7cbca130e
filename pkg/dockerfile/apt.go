package dockerfile

import (
	"fmt"
	"strings"
)

// writeAptStages configures /etc/apt/sources.list from scratch. Translation
// index downloads are disabled up front: private mirrors rarely carry the
// translation files and apt would otherwise stall on them.
func writeAptStages(b *strings.Builder, sources []string, updateCommand string, testCommands []string) {
	b.WriteString("# Configure repositories\n")
	b.WriteString("RUN rm -f /etc/apt/sources.list.d/* && \\\n")
	b.WriteString("    echo 'Acquire::Languages \"none\";' > /etc/apt/apt.conf.d/99translations && \\\n")
	b.WriteString("    > /etc/apt/sources.list && \\\n")
	for _, source := range sources {
		fmt.Fprintf(b, "    echo \"%s\" >> /etc/apt/sources.list && \\\n", escapeQuotes(source))
	}
	b.WriteString("    cat /etc/apt/sources.list\n\n")

	writeUpdateStage(b, updateCommand, "apt-get update")
	writeTestStage(b, testCommands, []string{"apt-get install -y --no-install-recommends apt-utils"})
}
