package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long:  `Show where feedwall keeps its files, print the effective configuration or validate it.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config, schema, database and log paths",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file",
	RunE:  runConfigValidate,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Regenerate the JSON schema next to the config file",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(err))
		return nil
	}
	schemaFile, _ := config.GetSchemaFile()
	logDir := app.Config.Logging.LogDir
	if logDir == "" {
		logDir, _ = config.GetLogDir()
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPaths(configFile, schemaFile, app.Config.Database.Path, logDir))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	data, err := config.EncodeConfig(app.Config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, _ := config.GetConfigFile()
	if app.ConfigErr != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(app.ConfigErr))
		return fmt.Errorf("invalid config")
	}
	if err := config.Validate(app.Config); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(err))
		return fmt.Errorf("invalid config")
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderValid(configFile))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if err := config.GenerateSchemaFile(); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(err))
		return nil
	}
	schemaFile, _ := config.GetSchemaFile()
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSchemaWritten(schemaFile))
	return nil
}
