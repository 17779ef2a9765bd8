// Package orchestrator ties the extractor, metadata inferencer, planner,
// executor and desktop builder together into the install and uninstall
// pipelines. It is the engine boundary: no error escapes Install as a
// panic, and a session runs at most one operation at a time.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/desktop"
	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/shiro123444/sideload/pkg/hooks"
	"github.com/shiro123444/sideload/pkg/install"
	"github.com/shiro123444/sideload/pkg/model"
	"github.com/shiro123444/sideload/pkg/plan"
)

// Orchestrator runs the install pipeline over its collaborators.
type Orchestrator struct {
	Extractor   Extractor
	Meta        MetadataInferencer
	Executor    *install.Executor
	Uninstaller *install.UninstallManager
	Builder     *desktop.Builder
	Container   ContainerInstaller
	HookManager hooks.Manager // optional
	Hooks       Hooks         // Hooks for progress and event notifications

	busy atomic.Bool
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Install runs the full pipeline for the archive at path. It never panics:
// unexpected internal failures are converted into a failure result carrying
// the underlying message. The only returned error is ErrOperationInFlight
// when another operation is still outstanding on this orchestrator.
func (o *Orchestrator) Install(ctx context.Context, archivePath string, opts Options) (res model.InstallResult, err error) {
	if !o.busy.CompareAndSwap(false, true) {
		return model.InstallResult{}, errors.ErrOperationInFlight
	}
	defer o.busy.Store(false)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("install panicked", logger.Fields{"archive": archivePath, "panic": fmt.Sprintf("%v", r)})
			res = model.Failure(fmt.Sprintf("internal error: %v", r))
			err = nil
		}
	}()

	return o.runInstall(ctx, archivePath, opts), nil
}

func (o *Orchestrator) runInstall(ctx context.Context, archivePath string, opts Options) model.InstallResult {
	base := filepath.Base(archivePath)
	emit(o.Hooks, Event{Phase: "classifying", ID: base})

	p := model.NewPackage(archivePath)
	if p.Type == model.TypeUnknown {
		emit(o.Hooks, Event{Phase: "error", ID: base, Msg: "unrecognized package type"})
		return model.Failure(fmt.Sprintf("unrecognized package type: %s", base))
	}
	defer p.Cleanup()

	if opts.UseContainer {
		return o.installViaContainer(ctx, p)
	}

	emit(o.Hooks, Event{Phase: "extracting", ID: base})
	if err := o.Extractor.Extract(ctx, p); err != nil {
		emit(o.Hooks, Event{Phase: "error", ID: base, Msg: err.Error()})
		return model.Failure(err.Error())
	}

	emit(o.Hooks, Event{Phase: "inferring", ID: base})
	if err := o.Meta.Infer(p); err != nil {
		emit(o.Hooks, Event{Phase: "error", ID: base, Msg: err.Error()})
		return model.Failure(err.Error())
	}
	appID := p.AppID()

	if err := o.runHook(hooks.PreInstall, p); err != nil {
		return model.Failure(err.Error())
	}

	emit(o.Hooks, Event{Phase: "planning", ID: appID})
	var pl model.InstallPlan
	switch p.Type {
	case model.TypeDeb:
		pl = plan.PlanDeb(p)
	case model.TypeTarGz:
		var err error
		if pl, err = plan.PlanTarGz(p); err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: appID, Msg: err.Error()})
			return model.Failure(err.Error())
		}
	}

	emit(o.Hooks, Event{Phase: "installing", ID: appID})
	if err := o.Executor.Layout.EnsureBaseDirs(); err != nil {
		return model.Failure(err.Error())
	}

	var execPath string
	var installErr error
	switch p.Type {
	case model.TypeDeb:
		_, execPath, installErr = o.Executor.InstallDebPayload(p, pl)
		if installErr == nil && execPath != "" {
			_, installErr = o.Executor.WriteWrapper(appID, execPath)
		}
	case model.TypeTarGz:
		_, execPath, installErr = o.Executor.InstallTarGzPayload(p, pl)
		if installErr == nil {
			_, installErr = o.Executor.LinkExecutable(appID, execPath)
		}
	}
	if installErr != nil {
		emit(o.Hooks, Event{Phase: "error", ID: appID, Msg: installErr.Error()})
		return model.Failure(installErr.Error())
	}

	installedIcon := o.Executor.InstallIcon(p)

	confirmation := model.ConfirmationVerified
	if opts.AddToMenu {
		emit(o.Hooks, Event{Phase: "integrating", ID: appID})
		refreshed, err := o.writeMenuEntry(ctx, p, appID, execPath, installedIcon, opts)
		if err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: appID, Msg: err.Error()})
			return model.Failure(err.Error())
		}
		if !refreshed {
			confirmation = model.ConfirmationFireAndForget
		}
	}

	if err := o.runHook(hooks.PostInstall, p); err != nil {
		return model.Failure(err.Error())
	}

	msg := fmt.Sprintf("%s installed", p.Name)
	if execPath == "" {
		msg = fmt.Sprintf("%s installed (no executable found, menu and icon only)", p.Name)
	}
	emit(o.Hooks, Event{Phase: "done", ID: appID, Msg: msg})
	return model.InstallResult{
		Success:        true,
		Message:        msg,
		AppID:          appID,
		ExecutablePath: execPath,
		Confirmation:   confirmation,
	}
}

// writeMenuEntry rewrites the package's own desktop entry when it shipped
// one, and synthesizes a fresh entry otherwise. Returns whether the menu
// database refresh was verified.
func (o *Orchestrator) writeMenuEntry(ctx context.Context, p *model.Package, appID, execPath, installedIcon string, opts Options) (bool, error) {
	if p.MenuEntrySource != "" {
		return o.Builder.RewriteEntry(p.MenuEntrySource, appID, execPath, opts.CreateDesktopIcon)
	}
	isServer := execPath != "" && o.Builder.DetectServer(ctx, execPath)
	return o.Builder.CreateEntry(p.Name, appID, execPath, installedIcon, isServer, opts.CreateDesktopIcon)
}

// installViaContainer hands a DEB package to the container strategy. Only
// DEB packages can go through a native package manager inside a container.
func (o *Orchestrator) installViaContainer(ctx context.Context, p *model.Package) model.InstallResult {
	if p.Type != model.TypeDeb {
		return model.Failure("container install supports only DEB packages")
	}
	if o.Container == nil {
		return model.Failure(errors.ErrContainerToolMissing.Error())
	}

	// Container installs skip extraction, so the name comes straight from
	// the name_version_arch filename convention.
	p.Name = strings.Split(p.Stem(), "_")[0]

	if err := o.runHook(hooks.PreInstall, p); err != nil {
		return model.Failure(err.Error())
	}

	emit(o.Hooks, Event{Phase: "installing", ID: p.AppID(), Msg: "container"})
	res, err := o.Container.Install(ctx, p)
	if err != nil {
		emit(o.Hooks, Event{Phase: "error", ID: p.AppID(), Msg: err.Error()})
		return model.Failure(err.Error())
	}

	if err := o.runHook(hooks.PostInstall, p); err != nil {
		return model.Failure(err.Error())
	}
	emit(o.Hooks, Event{Phase: "done", ID: res.AppID, Msg: res.Message})
	return res
}

// Uninstall removes everything the install created for the given name and
// returns the normalized app id it operated on.
func (o *Orchestrator) Uninstall(name string) (string, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return "", errors.ErrOperationInFlight
	}
	defer o.busy.Store(false)

	appID := model.NormalizeAppID(name)
	if err := o.runRemoveHook(hooks.PreRemove, name, appID); err != nil {
		return appID, err
	}

	emit(o.Hooks, Event{Phase: "uninstalling", ID: appID})
	o.Uninstaller.Uninstall(name)

	if err := o.runRemoveHook(hooks.PostRemove, name, appID); err != nil {
		return appID, err
	}
	emit(o.Hooks, Event{Phase: "done", ID: appID, Msg: name + " removed"})
	return appID, nil
}

// Inspect extracts and infers metadata for an archive without installing
// anything. The caller owns the returned package and must call Cleanup.
func (o *Orchestrator) Inspect(ctx context.Context, archivePath string) (*model.Package, model.InstallPlan, error) {
	p := model.NewPackage(archivePath)
	if p.Type == model.TypeUnknown {
		return nil, model.InstallPlan{}, errors.Wrapf(errors.ErrUnknownPackageType, "%s", filepath.Base(archivePath))
	}
	if err := o.Extractor.Extract(ctx, p); err != nil {
		p.Cleanup()
		return nil, model.InstallPlan{}, err
	}
	if err := o.Meta.Infer(p); err != nil {
		p.Cleanup()
		return nil, model.InstallPlan{}, err
	}

	var pl model.InstallPlan
	if p.Type == model.TypeDeb {
		pl = plan.PlanDeb(p)
	} else {
		var err error
		if pl, err = plan.PlanTarGz(p); err != nil {
			// An archive without executables is still inspectable.
			pl = model.InstallPlan{}
		}
	}
	return p, pl, nil
}

func (o *Orchestrator) runHook(hookType hooks.HookType, p *model.Package) error {
	if o.HookManager == nil || !o.HookManager.HasHook(hookType) {
		return nil
	}
	return o.HookManager.Execute(hookType, hooks.Context{
		AppName:     p.Name,
		AppVersion:  p.Version,
		ArchivePath: p.SourcePath,
		InstallPath: o.Executor.Layout.InstallDir(p.AppID()),
	})
}

func (o *Orchestrator) runRemoveHook(hookType hooks.HookType, name, appID string) error {
	if o.HookManager == nil || !o.HookManager.HasHook(hookType) {
		return nil
	}
	return o.HookManager.Execute(hookType, hooks.Context{
		AppName:     name,
		InstallPath: o.Uninstaller.Layout.InstallDir(appID),
	})
}
