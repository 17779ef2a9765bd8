// Package hooks runs optional user-provided Tengo scripts around install
// and uninstall operations. Scripts live in the configured hooks directory,
// one file per hook type.
package hooks

// HookType identifies when a hook runs.
type HookType string

// Supported hook types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
	PreRemove   HookType = "pre-remove"
	PostRemove  HookType = "post-remove"
)

// Hook is a script with its trigger type.
type Hook struct {
	Type    HookType
	Content string
}

// Context carries the values exposed to a hook script.
type Context struct {
	AppName     string
	AppVersion  string
	ArchivePath string
	InstallPath string
	Vars        map[string]interface{}
}

// Manager defines the interface for registering and running hooks.
type Manager interface {
	Execute(hookType HookType, ctx Context) error
	AddHook(hook Hook)
	HasHook(hookType HookType) bool
}
