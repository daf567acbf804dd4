package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"version"},
	Short:   "Show version and build information",
	RunE:    runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
	return nil
}
