package main

import (
	"fmt"
	"os"

	"github.com/zhubert/hopper/cmd"
	"github.com/zhubert/hopper/internal/app"
	"github.com/zhubert/hopper/internal/ui"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failure(app.Report(err), ui.DefaultWidth))
		os.Exit(1)
	}
}
