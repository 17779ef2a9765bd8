package model

// ConfirmationKind states how much the engine verified about an install
// before reporting success.
type ConfirmationKind int

const (
	// ConfirmationVerified means every step was checked for success.
	ConfirmationVerified ConfirmationKind = iota

	// ConfirmationFireAndForget means a best-effort step ran without a
	// success check, so the outcome is assumed rather than known.
	ConfirmationFireAndForget
)

// InstallResult is what an install operation reports back to the caller.
type InstallResult struct {
	Success bool
	Message string

	AppID          string
	ExecutablePath string

	// ViaContainer is set when the package was installed into a
	// distrobox container instead of the host.
	ViaContainer bool

	Confirmation ConfirmationKind
}

// Failure builds a failed result with the given message.
func Failure(msg string) InstallResult {
	return InstallResult{Success: false, Message: msg}
}
