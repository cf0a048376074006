package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/errors"
)

var openKey string

var openCmd = &cobra.Command{
	Use:   "open [workspace]",
	Short: "Pick a project in a workspace and switch to its session",
	Long: `Scans the workspace for projects, shows them in a fuzzy picker and switches
tmux to the session for the chosen project, creating it when needed.
The first entry creates a new project directory inside the workspace.

Examples:
  hopper open work        # by workspace name
  hopper open --key W     # by the tmux key bound to the workspace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openKey, "key", "", "Select the workspace by its key instead of its name")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := requireTools(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ws, err := selectWorkspace(cfg, args, openKey)
	if err != nil {
		return notifyFailure(cfg, err)
	}

	a, err := newApp(cfg, cmd.OutOrStdout())
	if err != nil {
		return notifyFailure(cfg, err)
	}
	return notifyFailure(cfg, a.OpenWorkspace(cmd.Context(), ws))
}

// selectWorkspace resolves the workspace named by args or bound to key.
func selectWorkspace(cfg *config.Config, args []string, key string) (config.Workspace, error) {
	switch {
	case key != "" && len(args) > 0:
		return config.Workspace{}, errors.E(errors.Op("cmd.open"), errors.KindInvalid,
			"give either a workspace name or --key, not both")
	case key != "":
		ws, ok := cfg.FindByKey(key)
		if !ok {
			return config.Workspace{}, errors.E(errors.Op("cmd.open"), errors.KindNotFound,
				fmt.Sprintf("no workspace is bound to key %q", key))
		}
		return ws, nil
	case len(args) == 1:
		return cfg.Find(args[0])
	}

	// A single workspace needs no name.
	workspaces := cfg.GetWorkspaces()
	if len(workspaces) == 1 {
		return workspaces[0], nil
	}
	return config.Workspace{}, errors.E(errors.Op("cmd.open"), errors.KindInvalid,
		"name a workspace (see \"hopper workspaces\")")
}
