package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/cli/tui/theme"
	"github.com/kmctl-dev/kmctl/internal/settings"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

var ThemeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the color theme",
	Long:      `Without arguments prints the current theme. With an argument, changes and saves it.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(settings.ThemeDark), string(settings.ThemeLight), "toggle"},
	RunE:      runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	if settingsManager == nil {
		return fmt.Errorf("settings not initialized")
	}
	if len(args) == 0 {
		printer.PrintInfo(fmt.Sprintf("Current theme: %s", settingsManager.Theme()))
		return nil
	}

	var next settings.Theme
	if args[0] == "toggle" {
		t, err := settingsManager.ToggleTheme()
		if err != nil {
			return err
		}
		next = t
	} else {
		t, err := settings.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := settingsManager.SetTheme(t); err != nil {
			return err
		}
		next = t
	}

	theme.Apply(next)
	printer.PrintSuccess(fmt.Sprintf("Theme set to %s", next))
	return nil
}
