package bridge

import (
	"fmt"
)

// Code identifies a binary-validation failure class.
type Code string

// Validation failure codes.
const (
	CodeNotAbsolutePath Code = "NotAbsolutePath"
	CodePathTraversal   Code = "PathTraversal"
	CodeFileTooLarge    Code = "FileTooLarge"
	CodeHashMismatch    Code = "HashMismatch"
)

// ValidationError reports a helper binary path that failed validation.
// Validation failures are never retried.
type ValidationError struct {
	// Code is the machine-readable failure class.
	Code Code

	// Path is the candidate path that failed.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("binary validation failed (%s): %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("binary validation failed (%s): %s", e.Code, e.Path)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BinaryNotFoundError reports that the helper binary could not be resolved.
type BinaryNotFoundError struct {
	// Name is the helper binary name that was searched for.
	Name string
}

// Error implements the error interface.
func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("%s binary not found; set EKBRIDGE_CLI_PATH or install it next to the server executable", e.Name)
}

// ExecError wraps a helper process spawn failure or an unparseable response.
// Envelope-level errors are not wrapped in ExecError: their message is
// propagated verbatim so the retry path can classify it.
type ExecError struct {
	// Action is the CLI action that failed.
	Action string

	// Stderr is the captured stderr output, if any.
	Stderr string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("eventkit-cli %s: %v (stderr: %s)", e.Action, e.Err, e.Stderr)
	}
	return fmt.Sprintf("eventkit-cli %s: %v", e.Action, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// PermissionTriggerError reports a failed permission dialog trigger.
type PermissionTriggerError struct {
	// Domain is the privacy scope the trigger targeted.
	Domain Domain

	// Err is the underlying osascript error.
	Err error
}

// Error implements the error interface.
func (e *PermissionTriggerError) Error() string {
	return fmt.Sprintf("permission trigger failed for %s: %v", e.Domain, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *PermissionTriggerError) Unwrap() error {
	return e.Err
}
