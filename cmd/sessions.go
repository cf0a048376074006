package cmd

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/config"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Pick an existing tmux session and switch to it",
	Long: `Lists the sessions of the running tmux server in a fuzzy picker and switches
to the chosen one. Works without a config file.`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, _ []string) error {
	if err := requireTools(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if stderrors.Is(err, config.ErrNoConfig) {
		cfg, err = config.New(""), nil
	}
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cmd.OutOrStdout())
	if err != nil {
		return notifyFailure(cfg, err)
	}
	return notifyFailure(cfg, a.ListAndAttach(cmd.Context()))
}
