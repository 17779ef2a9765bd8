// Package errors defines the sentinel errors shared across the install
// engine and small helpers for wrapping them with context.
package errors

import "fmt"

// Engine error taxonomy.
var (
	// ErrUnknownPackageType is returned for archive names that end in
	// neither .deb, .tar.gz nor .tgz. No extraction tool is invoked.
	ErrUnknownPackageType = fmt.Errorf("unrecognized package type")

	// ErrExtractionFailed is returned when every extraction path for an
	// archive failed.
	ErrExtractionFailed = fmt.Errorf("failed to extract package")

	// ErrNoExecutable is returned when a tar.gz package contains no
	// executable candidate. For DEB packages a missing executable is a
	// soft outcome, not this error.
	ErrNoExecutable = fmt.Errorf("no executable found in package")

	// ErrContainerToolMissing is returned when the container install
	// strategy is requested but distrobox is not on PATH.
	ErrContainerToolMissing = fmt.Errorf("distrobox is not installed")

	// ErrContainerStep is returned when a command inside the container
	// exits non-zero.
	ErrContainerStep = fmt.Errorf("container install step failed")

	// ErrOperationInFlight is returned when a session already has an
	// extraction or install outstanding.
	ErrOperationInFlight = fmt.Errorf("another operation is already in progress")

	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
