// Package config loads the EKBRIDGE_* environment variables and maps the
// environment profile (test, development, production) onto the binary
// validation settings the bridge locator enforces.
package config
