package cli

import (
	"fmt"
	"strings"

	"github.com/shiro123444/sideload/pkg/desktop"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var nameFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed applications",
		Long: `List the applications this tool installed, reconstructed from
the desktop entries under the managed applications directory.

Use --name to filter applications by name.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList(nameFilter)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter applications by name (partial match)")

	return cmd
}

func runList(nameFilter string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout, err := buildLayout(cfg)
	if err != nil {
		return err
	}

	apps := desktop.ScanInstalled(layout)
	if nameFilter != "" {
		filtered := apps[:0]
		for _, app := range apps {
			if strings.Contains(strings.ToLower(app.DisplayName), strings.ToLower(nameFilter)) {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
	}

	if len(apps) == 0 {
		fmt.Println("No applications installed")
		return nil
	}

	fmt.Printf("%-30s %-40s %s\n", "NAME", "EXEC", "ENTRY")
	fmt.Println(strings.Repeat("-", 90))
	for _, app := range apps {
		exec := app.ExecCommand
		if len(exec) > 40 {
			exec = exec[:37] + "..."
		}
		fmt.Printf("%-30s %-40s %s\n", app.DisplayName, exec, app.Filename)
	}
	return nil
}
