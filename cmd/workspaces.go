package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/ui"
)

var (
	addKey       string
	addRecursive bool
	addMaxDepth  int
	skipConfirm  bool
)

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "List configured workspaces",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return listWorkspaces(cmd.OutOrStdout(), cfg)
	},
}

var workspacesAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Add a workspace to the config",
	Long: `Adds a workspace and saves the config. The config file is created when it
does not exist yet.

Examples:
  hopper workspaces add work ~/work --key W
  hopper workspaces add oss ~/src --key O --recursive --max-depth 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := config.Workspace{Name: args[0], Path: args[1], Key: addKey}
		if addRecursive || cmd.Flags().Changed("max-depth") {
			depth := addMaxDepth
			ws.Options = &config.WorkspaceOptions{SearchGitSubfolders: addRecursive, MaxDepth: &depth}
		}
		return addWorkspace(cmd.OutOrStdout(), ws)
	},
}

var workspacesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a workspace from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeWorkspace(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], skipConfirm)
	},
}

func init() {
	workspacesAddCmd.Flags().StringVarP(&addKey, "key", "k", "", "tmux key bound to the workspace (required)")
	workspacesAddCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "Also offer nested git repositories")
	workspacesAddCmd.Flags().IntVar(&addMaxDepth, "max-depth", 2, "Levels searched below each project")
	workspacesRemoveCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	workspacesCmd.AddCommand(workspacesAddCmd)
	workspacesCmd.AddCommand(workspacesRemoveCmd)
	rootCmd.AddCommand(workspacesCmd)
}

func listWorkspaces(out io.Writer, cfg *config.Config) error {
	rows := [][]string{}
	for _, ws := range cfg.GetWorkspaces() {
		opts := ws.ScanOptions()
		recurse := "no"
		if opts.Recurse {
			recurse = "depth " + strconv.Itoa(opts.MaxDepth)
		}
		status := "ok"
		if !ws.RootExists() {
			status = "missing"
		}
		rows = append(rows, []string{ws.Name, ws.Key, paths.CollapseHome(ws.Root()), recurse, status})
	}

	fmt.Fprintln(out, ui.Table([]string{"NAME", "KEY", "PATH", "NESTED", "STATUS"}, rows))
	if cfg.SessionsKey != "" {
		fmt.Fprintln(out, ui.Note("sessions key: "+cfg.SessionsKey))
	}
	return nil
}

// loadOrNewConfig loads the config, or starts an empty one when the file does not exist.
func loadOrNewConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err == nil {
		return cfg, nil
	}
	if !stderrors.Is(err, config.ErrNoConfig) {
		return nil, err
	}
	path, perr := paths.ConfigFilePath()
	if perr != nil {
		return nil, errors.ConfigLoadFailed("config directory", perr)
	}
	return config.New(path), nil
}

func addWorkspace(out io.Writer, ws config.Workspace) error {
	cfg, err := loadOrNewConfig()
	if err != nil {
		return err
	}

	if !cfg.AddWorkspace(ws) {
		return errors.E(errors.Op("cmd.workspaces.add"), errors.KindInvalid,
			fmt.Sprintf("workspace %q already exists", ws.Name))
	}
	// Nothing is written unless the whole config is still valid.
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("added workspace %s (%s)", ws.Name, cfg.Path())))
	return nil
}

func removeWorkspace(out io.Writer, in io.Reader, name string, yes bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := cfg.Find(name); err != nil {
		return err
	}

	if !yes && !confirm(out, in, fmt.Sprintf("Remove workspace %s?", name)) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	cfg.RemoveWorkspace(name)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Success("removed workspace "+name))
	if len(cfg.GetWorkspaces()) == 0 {
		fmt.Fprintln(out, ui.Note("no workspaces left; add one with \"hopper workspaces add\""))
	}
	return nil
}
