package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/app"
	"github.com/zhubert/hopper/internal/cli"
	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/logger"
	"github.com/zhubert/hopper/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites and the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctor(cmd.Context(), cmd.OutOrStdout(), cli.NewChecker())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(ctx context.Context, out io.Writer, checker *cli.Checker) error {
	prereqs := cli.DefaultPrerequisites()
	fmt.Fprint(out, cli.FormatCheckResults(checker.CheckAll(ctx, prereqs)))

	fmt.Fprintln(out)
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		fmt.Fprintln(out, ui.Failure(app.Report(cfgErr), ui.DefaultWidth))
	} else {
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("config ok: %d workspace(s) in %s", len(cfg.GetWorkspaces()), cfg.Path())))
	}
	fmt.Fprintln(out, ui.Note("log file: "+logPath()))

	if err := checker.ValidateRequired(prereqs); err != nil {
		return err
	}
	return cfgErr
}

func logPath() string {
	if p := logger.Path(); p != "" {
		return p
	}
	p, err := logger.DefaultLogPath()
	if err != nil {
		return "unavailable"
	}
	return p
}
