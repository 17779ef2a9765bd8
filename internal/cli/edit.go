package cli

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/shiro123444/sideload/pkg/desktop"
	"github.com/shiro123444/sideload/pkg/install"
	"github.com/spf13/cobra"
)

// NewEditCmd creates the edit command.
func NewEditCmd() *cobra.Command {
	var (
		newName    string
		comment    string
		icon       string
		categories string
		terminal   string
	)

	cmd := &cobra.Command{
		Use:   "edit APP",
		Short: "Edit an installed application's menu entry",
		Long: `Rewrite the desktop entry of an installed application. Only the
fields given as flags change; everything else is kept. The desktop-folder
copy, if present, is updated too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEdit(args[0], newName, comment, icon, categories, terminal)
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New display name")
	cmd.Flags().StringVar(&comment, "comment", "", "New comment line")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon path or name")
	cmd.Flags().StringVar(&categories, "categories", "", "New Categories value (semicolon-separated)")
	cmd.Flags().StringVar(&terminal, "terminal", "", "Run in a terminal (true/false)")

	return cmd
}

func runEdit(name, newName, comment, icon, categories, terminal string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout, err := buildLayout(cfg)
	if err != nil {
		return err
	}

	app := findInstalledApp(layout, name)
	if app == nil {
		return fmt.Errorf("application %q is not installed", name)
	}

	if newName != "" {
		app.DisplayName = newName
	}
	if comment != "" {
		app.Comment = comment
	}
	if icon != "" {
		app.Icon = icon
	}
	if categories != "" {
		app.Categories = categories
	}
	if terminal != "" {
		app.Terminal = strings.EqualFold(terminal, "true")
	}

	if err := app.Save(layout); err != nil {
		return fmt.Errorf("failed to save %s: %w", app.Filename, err)
	}
	color.Success.Printf("✓ %s updated\n", app.Filename)
	return nil
}

// findInstalledApp matches by display name or entry filename, case
// insensitively.
func findInstalledApp(layout install.Layout, name string) *desktop.InstalledApp {
	lower := strings.ToLower(name)
	for _, app := range desktop.ScanInstalled(layout) {
		if strings.ToLower(app.DisplayName) == lower ||
			strings.ToLower(strings.TrimSuffix(app.Filename, ".desktop")) == lower {
			return app
		}
	}
	return nil
}
