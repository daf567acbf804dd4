package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/entity"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "List the permissions embedded sites are granted",
	Long: `Embedded sites are granted a fixed set of permissions without a prompt
(camera and microphone, notifications, fullscreen and the like). Every
other request is denied.`,
	RunE: runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
}

func runPermissions(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := styles.NewSettingsRenderer(app.Theme).RenderPermissions(entity.AllowedPermissions())
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
