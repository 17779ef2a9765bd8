package orchestrator

import (
	"context"

	"github.com/shiro123444/sideload/pkg/model"
)

// Extractor is the subset of the archive extractor used by the orchestrator.
type Extractor interface {
	Extract(ctx context.Context, p *model.Package) error
}

// MetadataInferencer is the subset of the metadata inferencer used by the
// orchestrator.
type MetadataInferencer interface {
	Infer(p *model.Package) error
}

// ContainerInstaller is the subset of the container strategy used by the
// orchestrator.
type ContainerInstaller interface {
	Install(ctx context.Context, p *model.Package) (model.InstallResult, error)
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // classifying|extracting|inferring|planning|installing|integrating|uninstalling|done|error
	ID    string // app id once known, otherwise the archive base name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options control a single install run.
type Options struct {
	// CreateDesktopIcon mirrors the menu entry onto the desktop folder.
	CreateDesktopIcon bool

	// AddToMenu writes the menu entry at all.
	AddToMenu bool

	// UseContainer routes a DEB install through the container strategy
	// instead of the host filesystem.
	UseContainer bool
}
