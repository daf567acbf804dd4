package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/entity"
)

var siteClear bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change zoom, volume and pinning",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved controls",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <zoom|volume|pinned> <value>",
	Short: "Change a global control",
	Long: `Change a global control.

  zoom    multiplier applied on top of fit-to-panel zoom, 0.5 to 2.0
  volume  media volume, 0.0 to 1.0
  pinned  true or false; a pinned board ignores swaps

Values outside the range are clamped.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSiteZoomCmd = &cobra.Command{
	Use:   "site-zoom <site> [value]",
	Short: "Override the zoom multiplier of one site",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSettingsSiteZoom,
}

var settingsSiteVolumeCmd = &cobra.Command{
	Use:   "site-volume <site> [value]",
	Short: "Override the volume of one site",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSettingsSiteVolume,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSiteZoomCmd)
	settingsCmd.AddCommand(settingsSiteVolumeCmd)
	for _, c := range []*cobra.Command{settingsSiteZoomCmd, settingsSiteVolumeCmd} {
		c.Flags().BoolVar(&siteClear, "clear", false, "remove the override")
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewSettingsRenderer(app.Theme).Render(stack.Controls.Controls()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	ctx := app.Ctx()
	key := strings.ToLower(args[0])
	var shown string
	switch key {
	case "zoom":
		v, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		shown = entity.FormatPercent(stack.Controls.SetZoom(ctx, v))
	case "volume":
		v, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		shown = entity.FormatPercent(stack.Controls.SetVolume(ctx, v))
	case "pinned":
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("pinned must be true or false: %w", err)
		}
		stack.Controls.SetPinned(ctx, v)
		shown = strconv.FormatBool(v)
	default:
		return fmt.Errorf("unknown setting %q (want zoom, volume or pinned)", args[0])
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, styles.NewSettingsRenderer(app.Theme).RenderUpdated(key, shown))
	printRunningNotice(w, app)
	return nil
}

func runSettingsSiteZoom(cmd *cobra.Command, args []string) error {
	return runSiteOverride(cmd, args, "zoom")
}

func runSettingsSiteVolume(cmd *cobra.Command, args []string) error {
	return runSiteOverride(cmd, args, "volume")
}

func runSiteOverride(cmd *cobra.Command, args []string, kind string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if siteClear == (len(args) == 2) {
		return fmt.Errorf("give either a value or --clear")
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	ctx := app.Ctx()
	id := entity.SiteID(args[0])
	controls := stack.Controls
	key := string(id) + " " + kind

	var shown string
	switch {
	case siteClear && kind == "zoom":
		err = controls.ClearSiteZoom(ctx, id)
		shown = "global"
	case siteClear:
		err = controls.ClearSiteVolume(ctx, id)
		shown = "global"
	default:
		v, parseErr := parseFloat(args[1])
		if parseErr != nil {
			return parseErr
		}
		if kind == "zoom" {
			err = controls.SetSiteZoom(ctx, id, v)
			shown = entity.FormatPercent(controls.Controls().SiteZoom[id])
		} else {
			err = controls.SetSiteVolume(ctx, id, v)
			shown = entity.FormatPercent(controls.Controls().SiteVolume[id])
		}
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, styles.NewSettingsRenderer(app.Theme).RenderUpdated(key, shown))
	printRunningNotice(w, app)
	return nil
}

// parseFloat accepts plain numbers and percentages such as "120%".
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v / scale, nil
}
