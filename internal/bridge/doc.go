// Package bridge shells out to the eventkit-cli helper binary that talks to
// the macOS Reminders and Calendar stores, and implements the permission
// retry protocol around it.
//
// The package has four parts:
//
//   - Locator resolves and validates the helper binary path (absolute-path
//     enforcement, size ceiling, optional SHA-256 check), once per process.
//   - Bridge spawns the helper with a discrete argument vector, parses the
//     JSON envelope on stdout and classifies the outcome.
//   - PermissionService triggers the OS privacy dialogs via osascript, with
//     in-flight de-duplication so concurrent callers share one dialog.
//   - Bridge.Call ties them together: when a CLI failure reads like a
//     permission denial, it triggers the matching dialog and retries the
//     invocation exactly once, surfacing the original error if the retry
//     fails too.
//
// The permission-denial detection is a string contract with the helper's
// error wording; see ClassifyPermissionError.
package bridge
