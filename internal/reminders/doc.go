// Package reminders provides access to macOS Reminders operations via the
// eventkit-cli helper binary.
//
// The Client builds argument vectors and hands them to the CLI bridge, which
// owns process spawning, envelope parsing and the permission retry protocol.
// Errors produced by the bridge are returned unwrapped: the helper's error
// text already names the failing operation and scope.
package reminders
