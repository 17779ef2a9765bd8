package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "Show what an install would do without installing",
		Long: `Extract an archive to a scratch directory, infer its metadata
and plan the install, then print what was found. Nothing is installed and
the scratch directory is removed afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}

	return cmd
}

func runInspect(cmd *cobra.Command, archivePath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, layout, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	p, pl, err := orch.Inspect(cmd.Context(), archivePath)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", archivePath, err)
	}
	defer p.Cleanup()

	fmt.Printf("Type:        %s\n", p.Type)
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("App id:      %s\n", p.AppID())
	if p.Version != "" {
		fmt.Printf("Version:     %s\n", p.Version)
	}
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if p.IconPath != "" {
		fmt.Printf("Icon:        %s\n", p.IconPath)
	}
	if p.MenuEntrySource != "" {
		fmt.Printf("Menu entry:  %s\n", p.MenuEntrySource)
	}

	if pl.HasPayload() {
		fmt.Printf("Payload:     %s (%s)\n", pl.PayloadSourceDir, pl.Mode)
	} else {
		fmt.Println("Payload:     none found")
	}
	if pl.PrimaryExecutable != "" {
		fmt.Printf("Executable:  %s\n", pl.PrimaryExecutable)
	}
	fmt.Printf("Would install to: %s\n", layout.InstallDir(p.AppID()))
	return nil
}
