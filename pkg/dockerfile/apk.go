package dockerfile

import (
	"fmt"
	"strings"
)

func writeApkStages(b *strings.Builder, sources []string, updateCommand string, testCommands []string) {
	b.WriteString("# Configure repositories\n")
	b.WriteString("RUN > /etc/apk/repositories && \\\n")
	for _, source := range sources {
		fmt.Fprintf(b, "    echo \"%s\" >> /etc/apk/repositories && \\\n", escapeQuotes(source))
	}
	b.WriteString("    cat /etc/apk/repositories\n\n")

	writeUpdateStage(b, updateCommand, "apk update")
	writeTestStage(b, testCommands, []string{"apk add --no-cache curl"})
}
