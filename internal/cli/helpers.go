package cli

import (
	"fmt"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/archive"
	"github.com/shiro123444/sideload/pkg/config"
	"github.com/shiro123444/sideload/pkg/container"
	"github.com/shiro123444/sideload/pkg/desktop"
	"github.com/shiro123444/sideload/pkg/hooks"
	"github.com/shiro123444/sideload/pkg/install"
	"github.com/shiro123444/sideload/pkg/meta"
	"github.com/shiro123444/sideload/pkg/orchestrator"
)

// These variables will be set by the main package.
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// loadConfig loads the configuration from the --config flag path or the
// default location, and applies flag overrides.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if NoColor != nil && *NoColor {
		color.Disable()
	}

	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

// buildLayout resolves the install layout, honoring config overrides.
func buildLayout(cfg *config.Config) (install.Layout, error) {
	layout, err := install.DefaultLayout()
	if err != nil {
		return install.Layout{}, err
	}
	if cfg.Settings.DataDir != "" {
		layout.DataRoot = cfg.Settings.DataDir
		layout.IconsDir = filepath.Join(cfg.Settings.DataDir, "icons")
		layout.AppsDir = filepath.Join(cfg.Settings.DataDir, "applications")
	}
	if cfg.Settings.BinDir != "" {
		layout.BinDir = cfg.Settings.BinDir
	}
	if cfg.Settings.DesktopDir != "" {
		layout.DesktopDir = cfg.Settings.DesktopDir
	}
	return layout, nil
}

// buildOrchestrator wires the engine together from config.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, install.Layout, error) {
	layout, err := buildLayout(cfg)
	if err != nil {
		return nil, install.Layout{}, err
	}

	builder := desktop.NewBuilder(layout)
	if cfg.Settings.ServerProbeTimeout > 0 {
		builder.ProbeTimeout = cfg.Settings.ServerProbeTimeout
	}

	var hookManager hooks.Manager
	if cfg.Settings.HooksDir != "" {
		executor := hooks.NewTengoExecutor()
		if err := hooks.LoadFromDir(executor, cfg.Settings.HooksDir); err != nil {
			return nil, install.Layout{}, fmt.Errorf("failed to load hooks: %w", err)
		}
		hookManager = executor
	}

	orch := &orchestrator.Orchestrator{
		Extractor:   archive.NewExtractor(),
		Meta:        meta.NewInferencer(),
		Executor:    install.NewExecutor(layout),
		Uninstaller: install.NewUninstallManager(layout),
		Builder:     builder,
		Container:   container.NewStrategy(cfg.Settings.ContainerName, cfg.Settings.ContainerImage),
		HookManager: hookManager,
		Hooks:       progressHooks(),
	}
	return orch, layout, nil
}

// progressHooks prints phase transitions as the pipeline advances.
func progressHooks() orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		switch e.Phase {
		case "error":
			color.Danger.Printf("%s: %s\n", e.Phase, e.Msg)
		case "done":
			// The result summary is printed by the command itself.
		default:
			if e.Msg != "" {
				fmt.Printf("%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
			} else {
				fmt.Printf("%s: %s\n", e.Phase, e.ID)
			}
		}
	}}
}
