package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/shiro123444/sideload/pkg/errors"
)

// TengoExecutor runs hook scripts with the Tengo interpreter.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an empty executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{scripts: make(map[HookType]string)}
}

// Execute runs the script registered for hookType, if any. A script can
// signal failure by assigning a message to an `err` variable.
func (e *TengoExecutor) Execute(hookType HookType, ctx Context) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "times"))

	bindings := map[string]interface{}{
		"appName":     ctx.AppName,
		"appVersion":  ctx.AppVersion,
		"archivePath": ctx.ArchivePath,
		"installPath": ctx.InstallPath,
	}
	for k, v := range ctx.Vars {
		bindings[k] = v
	}
	for k, v := range bindings {
		if err := instance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable %q to hook script: %w", k, err)
		}
	}

	compiled, err := instance.Run()
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", hookType, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrapf(errors.ErrHookScript, "%s: %v", hookType, v)
		case string:
			if v != "" {
				return errors.Wrapf(errors.ErrHookScript, "%s: %s", hookType, v)
			}
		}
	}
	return nil
}

// AddHook registers or replaces the script for a hook type.
func (e *TengoExecutor) AddHook(hook Hook) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.Type] = hook.Content
}

// HasHook reports whether a script is registered for the hook type.
func (e *TengoExecutor) HasHook(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, ok := e.scripts[hookType]
	return ok
}
