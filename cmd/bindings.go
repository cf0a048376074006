package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/keymap"
)

var bindingsCommand string

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Print tmux key bindings for the configured workspaces",
	Long: `Prints a tmux.conf snippet binding each workspace key to a popup running
"hopper open <workspace>", plus the sessions key when one is configured.

Example:
  hopper bindings >> ~/.tmux.conf`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printBindings(cmd.OutOrStdout(), cfg, bindingsCommand)
	},
}

func init() {
	bindingsCmd.Flags().StringVar(&bindingsCommand, "command", keymap.DefaultCommand, "Command the bindings run")
	rootCmd.AddCommand(bindingsCmd)
}

func printBindings(out io.Writer, cfg *config.Config, command string) error {
	bindings, err := keymap.Register(cfg, command)
	if err != nil {
		return err
	}
	fmt.Fprint(out, keymap.Render(bindings))
	return nil
}
