package main

import (
	"github.com/mirror-tools/mirror-test/pkg/cli"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatal(err.Error())
	}

	if err := cmd.Execute(); err != nil {
		console.Fatal(err.Error())
	}
}
