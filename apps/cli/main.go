package main

import (
	"github.com/abdul-hamid-achik/xunit/apps/cli/cmd"

	// example suites compiled into the binary
	_ "github.com/abdul-hamid-achik/xunit/packages/examples/calculatortest"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
