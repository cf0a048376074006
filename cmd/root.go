package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/hopper/internal/app"
	"github.com/zhubert/hopper/internal/cli"
	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/logger"
	"github.com/zhubert/hopper/internal/notification"
	"github.com/zhubert/hopper/internal/picker"
	"github.com/zhubert/hopper/internal/scanner"
	"github.com/zhubert/hopper/internal/session"
	"github.com/zhubert/hopper/internal/tmux"
	"github.com/zhubert/hopper/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "hopper",
	Short: "Jump between project tmux sessions",
	Long: `Hopper opens a fuzzy picker over the projects in a workspace directory and
switches tmux to a session for the chosen project, creating the session the
first time. Bind "hopper open <workspace>" to a tmux key with "hopper bindings".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()

	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("hopper %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("hopper %s\n", version)
}

// loadConfig loads and validates the config and applies its theme.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ui.SetThemeByName(cfg.GetTheme())
	return cfg, nil
}

// newApp wires the selection flow for cfg. Tests replace it.
var newApp = func(cfg *config.Config, out io.Writer) (*app.App, error) {
	namer, err := cfg.Namer()
	if err != nil {
		return nil, err
	}

	client := tmux.NewClient()
	client.Timeout = cfg.Timeout(tmux.DefaultTimeout)
	controller := session.NewController(client, namer, picker.NewPathPrompt())
	return app.New(scanner.New(), controller, picker.New(), out), nil
}

// requireTools fails when a required external tool is missing.
var requireTools = func() error {
	return cli.NewChecker().ValidateRequired(cli.DefaultPrerequisites())
}

// notifyFailure mirrors err as a desktop notification when the config enables it.
func notifyFailure(cfg *config.Config, err error) error {
	if err == nil || cfg == nil {
		return err
	}
	if nerr := notification.Failure(cfg.GetNotificationsEnabled(), app.Report(err)); nerr != nil {
		logger.ComponentLogger("cmd").Debug("failure notification not delivered", "error", nerr)
	}
	return err
}
