package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultBinaryName is the helper binary the locator searches for when no
// explicit path is configured.
const DefaultBinaryName = "eventkit-cli"

// DefaultMaxFileSize is the fallback size ceiling when the configuration
// leaves it unset.
const DefaultMaxFileSize = 50 * 1024 * 1024

// LocatorConfig controls how the helper binary is resolved and validated.
type LocatorConfig struct {
	// Path is the explicitly configured binary path. When empty, the
	// SearchRoots are probed for BinaryName.
	Path string

	// BinaryName is the helper file name (default: eventkit-cli).
	BinaryName string

	// SearchRoots are the directories probed when Path is empty. When nil,
	// the directory of the server executable, its bin/ subdirectory and the
	// usual libexec locations are probed.
	SearchRoots []string

	// RequireAbsolutePath rejects relative configured paths.
	RequireAbsolutePath bool

	// MaxFileSize is the size ceiling in bytes (default: 50 MB).
	MaxFileSize int64

	// ExpectedSHA256 is the hex content digest the binary must match.
	// Empty disables the check.
	ExpectedSHA256 string
}

// Locator resolves the helper binary path once per process lifetime.
// The result, success or failure, is cached and immutable afterwards.
type Locator struct {
	cfg LocatorConfig

	once sync.Once
	path string
	err  error
}

// NewLocator creates a Locator for the given configuration.
func NewLocator(cfg LocatorConfig) *Locator {
	if cfg.BinaryName == "" {
		cfg.BinaryName = DefaultBinaryName
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &Locator{cfg: cfg}
}

// Resolve returns the validated absolute path of the helper binary.
// The first call does the filesystem work; subsequent calls return the
// cached result.
func (l *Locator) Resolve() (string, error) {
	l.once.Do(func() {
		l.path, l.err = l.resolve()
	})
	return l.path, l.err
}

func (l *Locator) resolve() (string, error) {
	if l.cfg.Path != "" {
		return l.validate(l.cfg.Path)
	}

	for _, root := range l.candidateRoots() {
		candidate := filepath.Join(root, l.cfg.BinaryName)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return l.validate(candidate)
	}

	return "", &BinaryNotFoundError{Name: l.cfg.BinaryName}
}

func (l *Locator) candidateRoots() []string {
	if len(l.cfg.SearchRoots) > 0 {
		return l.cfg.SearchRoots
	}

	var roots []string
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		roots = append(roots, dir, filepath.Join(dir, "bin"))
	}
	return append(roots, "/usr/local/libexec", "/opt/homebrew/libexec")
}

// validate applies the path and content checks in a fixed order: traversal,
// absoluteness, existence, size, digest. Traversal is checked regardless of
// RequireAbsolutePath.
func (l *Locator) validate(path string) (string, error) {
	if containsTraversal(path) {
		return "", &ValidationError{Code: CodePathTraversal, Path: path}
	}

	if l.cfg.RequireAbsolutePath && !filepath.IsAbs(path) {
		return "", &ValidationError{Code: CodeNotAbsolutePath, Path: path}
	}

	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return "", &BinaryNotFoundError{Name: l.cfg.BinaryName}
	}

	if info.Size() > l.cfg.MaxFileSize {
		return "", &ValidationError{
			Code: CodeFileTooLarge,
			Path: clean,
			Err:  fmt.Errorf("size %d exceeds limit %d", info.Size(), l.cfg.MaxFileSize),
		}
	}

	if l.cfg.ExpectedSHA256 != "" {
		digest, err := fileSHA256(clean)
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", clean, err)
		}
		if !strings.EqualFold(digest, l.cfg.ExpectedSHA256) {
			return "", &ValidationError{
				Code: CodeHashMismatch,
				Path: clean,
				Err:  fmt.Errorf("got %s", digest),
			}
		}
	}

	if !filepath.IsAbs(clean) {
		if abs, err := filepath.Abs(clean); err == nil {
			clean = abs
		}
	}

	return clean, nil
}

// containsTraversal reports whether any path segment is "..".
func containsTraversal(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
