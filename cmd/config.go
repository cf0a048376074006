package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/ui"
)

var (
	configPlain bool
	initForce   bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config file",
	Long:  `Prints the config file path followed by its contents with syntax highlighting.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showConfig(cmd.OutOrStdout(), configPlain)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := paths.ConfigFilePath()
		if err != nil {
			return errors.ConfigLoadFailed("config directory", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Creates the config file with a commented example workspace. Edit it, then
run "hopper bindings" to get the tmux key bindings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeStarterConfig(cmd.OutOrStdout(), initForce)
	},
}

func init() {
	configCmd.Flags().BoolVar(&configPlain, "plain", false, "Print without syntax highlighting")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

func showConfig(out io.Writer, plain bool) error {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return errors.ConfigLoadFailed("config directory", err)
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.E(errors.Op("cmd.config"), errors.KindConfig,
			fmt.Errorf("%w (expected a file at %s; run \"hopper init\")", config.ErrNoConfig, path))
	}
	if err != nil {
		return errors.ConfigLoadFailed(path, err)
	}

	fmt.Fprintln(out, ui.Note("# "+path))
	if plain {
		fmt.Fprint(out, string(data))
		return nil
	}
	fmt.Fprint(out, ui.HighlightYAML(string(data)))
	return nil
}

func writeStarterConfig(out io.Writer, force bool) error {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return errors.ConfigLoadFailed("config directory", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return errors.E(errors.Op("cmd.init"), errors.KindInvalid,
			fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.E(errors.Op("cmd.init"), errors.KindIO, err)
	}
	if err := os.WriteFile(path, []byte(config.ExpectedShape), 0644); err != nil {
		return errors.E(errors.Op("cmd.init"), errors.KindIO, err)
	}

	fmt.Fprintln(out, ui.Success("created "+path))
	return nil
}
