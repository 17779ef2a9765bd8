package cli

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/shiro123444/sideload/pkg/model"
	"github.com/shiro123444/sideload/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		useContainer  bool
		noDesktopIcon bool
		noMenu        bool
	)

	cmd := &cobra.Command{
		Use:   "install ARCHIVE",
		Short: "Install a DEB or tar.gz archive",
		Long: `Install a third-party application archive onto this machine.
The archive is extracted, its metadata and icon are inferred, the payload
is copied under ~/.local/share and a launcher is placed in ~/.local/bin,
along with a desktop-menu entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args[0], useContainer, noDesktopIcon, noMenu)
		},
	}

	cmd.Flags().BoolVar(&useContainer, "container", false, "Install a DEB into a distrobox container instead of the host")
	cmd.Flags().BoolVar(&noDesktopIcon, "no-desktop-icon", false, "Do not mirror the menu entry onto the desktop folder")
	cmd.Flags().BoolVar(&noMenu, "no-menu", false, "Do not create a desktop-menu entry")

	return cmd
}

func runInstall(cmd *cobra.Command, archivePath string, useContainer, noDesktopIcon, noMenu bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, _, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	opts := orchestrator.Options{
		CreateDesktopIcon: cfg.Settings.CreateDesktopIcon && !noDesktopIcon,
		AddToMenu:         cfg.Settings.AddToMenu && !noMenu,
		UseContainer:      useContainer,
	}

	res, err := orch.Install(cmd.Context(), archivePath, opts)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", archivePath, err)
	}
	printResult(res)
	if !res.Success {
		return fmt.Errorf("install failed: %s", res.Message)
	}
	return nil
}

func printResult(res model.InstallResult) {
	if !res.Success {
		color.Danger.Printf("✗ %s\n", res.Message)
		return
	}
	color.Success.Printf("✓ %s\n", res.Message)
	if res.ExecutablePath != "" {
		fmt.Printf("  executable: %s\n", res.ExecutablePath)
	}
	if res.ViaContainer {
		fmt.Println("  installed via container")
	}
	if res.Confirmation == model.ConfirmationFireAndForget {
		fmt.Println("  note: desktop-menu refresh could not be verified")
	}
}
