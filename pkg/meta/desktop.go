package meta

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// findMenuEntry locates the first desktop-entry file anywhere under root,
// skipping URL-handler entries (browsers and Electron apps ship those
// alongside the real launcher).
func findMenuEntry(root string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".desktop") && !strings.Contains(name, "url-handler") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// parseEntryIdentity extracts the Name= and Comment= values from a
// desktop-entry file. Missing keys yield empty strings.
func parseEntryIdentity(path string) (name, comment string) {
	file, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Name=") && name == "":
			name = strings.TrimSpace(strings.TrimPrefix(line, "Name="))
		case strings.HasPrefix(line, "Comment=") && comment == "":
			comment = strings.TrimSpace(strings.TrimPrefix(line, "Comment="))
		}
	}
	return name, comment
}
