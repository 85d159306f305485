// Package errors provides typed errors with exit codes for guestctl.
//
// # Error Types
//
// GuestctlError is the base error type that wraps an error with an exit code.
// Two domain error kinds are layered on top of it for the package-manager
// layer:
//
//   - RunError: a remote script exited nonzero. Carries the exact command,
//     return code, stdout and stderr. This is the expected failure mode for
//     "package not found" or "install failed" and is propagated verbatim.
//   - GeneralError: a classification failure raised before any script is
//     built, such as no package manager discovered on a guest, or an
//     operation the active backend does not support.
//
// # Exit Codes
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/classification errors
//	ExitRunError     = 2  // Remote script failed
//	ExitConfigError  = 3  // Configuration error
//	ExitGuestError   = 4  // Guest connection/setup failed
//	ExitPlanError    = 5  // Preparation plan error
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
