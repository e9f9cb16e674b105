// Package calendar provides access to macOS Calendar operations via the
// eventkit-cli helper binary.
//
// Like the reminders package, the Client only builds argument vectors; the
// bridge owns subprocess handling and the permission retry protocol.
package calendar
