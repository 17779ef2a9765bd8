// Package fsutil provides utility functions and constants for file system
// operations.
package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is the default mode for regular files (-rw-r--r--).
	FileModeDefault = 0o644
	// FileModeExec is the mode for executable files and generated
	// launcher scripts (-rwxr-xr-x).
	FileModeExec = 0o755

	// DirModeDefault is the default mode for directories (drwxr-xr-x).
	DirModeDefault = 0o755
	// DirModePrivate is the mode for private directories (drwx------).
	DirModePrivate = 0o700
)
