// Package cmd provides Cobra CLI commands for feedwall.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli"
	"github.com/bnema/feedwall/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "feedwall",
		Short: "Several social feeds side by side in one window",
		Long: `Feedwall - one large feed and a column of small ones.

Feedwall opens a set of social media sites in a single GTK4 window: one
main panel rendered like a desktop browser, an optional secondary panel
and a row of sub panels rendered like phones. Clicking a sub panel
promotes it to main.

Run 'feedwall' or 'feedwall run' to open the window, or use the
subcommands to inspect and change the saved layout and controls.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "run":
				return nil
			}

			if app != nil {
				// A previous Execute in the same process failed before PostRun.
				_ = app.Close()
			}
			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// runCmd is a placeholder for help; main.go opens the window before cobra runs.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the feedwall window",
	Long: `Open the GTK4 window with every configured site.

Only one window may run per profile. Changes made with the layout and
settings commands while a window is open apply on its next start.`,
	Run: func(_ *cobra.Command, _ []string) {},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
