package model

// InstallMode describes how a payload is copied into the install
// directory.
type InstallMode int

const (
	// ModeWholeDirectory copies the payload directory tree as-is.
	ModeWholeDirectory InstallMode = iota

	// ModeLooseBinaries copies individual files from a bin directory.
	ModeLooseBinaries
)

// String returns a human-readable name for the install mode.
func (m InstallMode) String() string {
	if m == ModeLooseBinaries {
		return "loose-binaries"
	}
	return "whole-directory"
}

// InstallPlan is the outcome of payload discovery over an extracted tree.
type InstallPlan struct {
	// PayloadSourceDir is the directory inside the extracted tree to
	// install from. Empty means no payload was found.
	PayloadSourceDir string

	Mode InstallMode

	// PrimaryExecutable is the executable chosen before copying, when
	// discovery runs over the extracted tree rather than the installed
	// one. Library directories are resolved after the copy, over the
	// installed tree.
	PrimaryExecutable string
}

// HasPayload reports whether discovery found anything to install.
func (p InstallPlan) HasPayload() bool {
	return p.PayloadSourceDir != ""
}
