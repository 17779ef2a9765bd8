package cli

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall APP...",
		Short: "Uninstall applications",
		Long: `Remove everything an install created for the given application
names: the payload directory, the launcher, desktop entries and icons.
Uninstalling an application that is not installed is a no-op.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runUninstall(args)
		},
	}

	return cmd
}

func runUninstall(names []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, _, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	for _, name := range names {
		appID, err := orch.Uninstall(name)
		if err != nil {
			return fmt.Errorf("failed to uninstall %s: %w", name, err)
		}
		color.Success.Printf("✓ %s removed\n", appID)
	}
	return nil
}
