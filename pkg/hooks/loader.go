package hooks

import (
	"os"
	"path/filepath"
	"strings"
)

const scriptExtension = ".tengo"

var validHookTypes = map[string]HookType{
	string(PreInstall):  PreInstall,
	string(PostInstall): PostInstall,
	string(PreRemove):   PreRemove,
	string(PostRemove):  PostRemove,
}

// LoadFromDir reads hook scripts from dir and registers them with the
// manager. Files are matched by name: pre-install.tengo, post-install.tengo,
// pre-remove.tengo, post-remove.tengo. Unknown files are ignored. A missing
// directory is not an error.
func LoadFromDir(m Manager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), scriptExtension) {
			continue
		}
		hookType, ok := validHookTypes[strings.TrimSuffix(entry.Name(), scriptExtension)]
		if !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		m.AddHook(Hook{Type: hookType, Content: string(content)})
	}
	return nil
}
