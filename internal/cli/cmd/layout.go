package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/feedwall/internal/cli"
	"github.com/bnema/feedwall/internal/cli/model"
	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/entity"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show or change the saved panel layout",
	Long: `Show the saved panel layout, or change it with the subcommands.

The layout is [main, secondary, sub panels...]. Swaps are ignored while the
board is pinned.`,
	RunE: runLayoutShow,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved panel layout",
	RunE:  runLayoutShow,
}

var layoutSwapCmd = &cobra.Command{
	Use:   "swap <site>",
	Short: "Promote a sub or secondary panel to main",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutSwap,
}

var layoutSecondaryCmd = &cobra.Command{
	Use:   "secondary",
	Short: "Swap the main and secondary panels",
	Args:  cobra.NoArgs,
	RunE:  runLayoutSecondary,
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore layout.default from the config file",
	Args:  cobra.NoArgs,
	RunE:  runLayoutReset,
}

var layoutEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Reorder panels interactively",
	Args:  cobra.NoArgs,
	RunE:  runLayoutEdit,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutSwapCmd)
	layoutCmd.AddCommand(layoutSecondaryCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	layoutCmd.AddCommand(layoutEditCmd)
}

func runLayoutShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}
	renderer := styles.NewLayoutRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.Render(stack.Arranger.Panels(), stack.Controls.Controls().Pinned))
	return nil
}

func runLayoutSwap(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	id := entity.SiteID(args[0])
	if _, ok := stack.Session.Site(id); !ok {
		return fmt.Errorf("%w: %s", entity.ErrUnknownSite, id)
	}
	arr, changed := stack.Arranger.SwapByPanel(app.Ctx(), id)
	reason := ""
	if !changed {
		reason = swapRefusal(stack.Controls.Controls().Pinned, fmt.Sprintf("%s is already main", id))
	}
	printLayoutChange(cmd.OutOrStdout(), app, changed, arr, reason)
	return nil
}

func runLayoutSecondary(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	arr, changed := stack.Arranger.SwapMainWithSecondary(app.Ctx())
	reason := ""
	if !changed {
		reason = swapRefusal(stack.Controls.Controls().Pinned, "there is no secondary panel")
	}
	printLayoutChange(cmd.OutOrStdout(), app, changed, arr, reason)
	return nil
}

func runLayoutReset(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	changed := stack.Arranger.ResetArrangement(app.Ctx(), app.DefaultArrangement())
	printLayoutChange(cmd.OutOrStdout(), app, changed, stack.Arranger.CurrentArrangement(), "layout.default names no configured site")
	return nil
}

func runLayoutEdit(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	stack, err := app.Stack()
	if err != nil {
		return err
	}

	editor := model.NewLayoutEditor(app.Theme, stack.Session.Sites(), stack.Arranger.CurrentArrangement(), app.DefaultArrangement())
	final, err := tea.NewProgram(editor).Run()
	if err != nil {
		return fmt.Errorf("layout editor: %w", err)
	}
	result, ok := final.(model.LayoutEditorModel)
	if !ok || !result.Saved {
		return nil
	}

	changed := stack.Arranger.ResetArrangement(app.Ctx(), result.Arrangement())
	printLayoutChange(cmd.OutOrStdout(), app, changed, stack.Arranger.CurrentArrangement(), "the edited layout has no main site")
	return nil
}

func swapRefusal(pinned bool, fallback string) string {
	if pinned {
		return "the board is pinned"
	}
	return fallback
}

func printLayoutChange(w io.Writer, app *cli.App, changed bool, arr entity.Arrangement, reason string) {
	renderer := styles.NewLayoutRenderer(app.Theme)
	fmt.Fprint(w, renderer.RenderSwap(changed, arr, reason))
	if changed {
		printRunningNotice(w, app)
	}
}

func printRunningNotice(w io.Writer, app *cli.App) {
	if pid, running := app.WindowRunning(); running {
		fmt.Fprintln(w, app.Theme.WarningStyle.Render(
			fmt.Sprintf("  feedwall is running (pid %d); the change applies on its next start", pid)))
	}
}
