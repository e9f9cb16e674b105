package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ekbridge/ekbridge/internal/bridge"
)

// Environment profile names.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// Binary size ceilings per profile.
const (
	productionMaxFileSize = 50 * 1024 * 1024
	relaxedMaxFileSize    = 100 * 1024 * 1024
)

// Config holds the environment-variable-driven settings for the server.
type Config struct {
	// Environment selects the binary validation profile. "test" and
	// "development" relax the absolute-path requirement and raise the size
	// ceiling; every other value gets the production defaults.
	Environment string `env:"EKBRIDGE_ENV" envDefault:"production"`

	// CLIPath is the explicit path to the eventkit-cli helper binary.
	CLIPath string `env:"EKBRIDGE_CLI_PATH"`

	// CLIMaxFileSize overrides the profile's binary size ceiling in bytes.
	CLIMaxFileSize int64 `env:"EKBRIDGE_CLI_MAX_SIZE"`

	// CLISHA256 is the expected hex content digest of the helper binary.
	// Production deployments are expected to pin one.
	CLISHA256 string `env:"EKBRIDGE_CLI_SHA256"`

	// CLISearchRoots are colon-separated directories probed when CLIPath is
	// unset.
	CLISearchRoots []string `env:"EKBRIDGE_CLI_SEARCH_ROOTS" envSeparator:":"`

	// PermissionTimeout bounds each osascript permission trigger.
	PermissionTimeout time.Duration `env:"EKBRIDGE_PERMISSION_TIMEOUT" envDefault:"30s"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// relaxed reports whether the profile loosens binary validation.
func (c Config) relaxed() bool {
	return c.Environment == EnvTest || c.Environment == EnvDevelopment
}

// LocatorConfig derives the binary validation settings for the configured
// environment profile.
func (c Config) LocatorConfig() bridge.LocatorConfig {
	lc := bridge.LocatorConfig{
		Path:           c.CLIPath,
		SearchRoots:    c.CLISearchRoots,
		ExpectedSHA256: c.CLISHA256,
		MaxFileSize:    c.CLIMaxFileSize,
	}

	if lc.MaxFileSize <= 0 {
		if c.relaxed() {
			lc.MaxFileSize = relaxedMaxFileSize
		} else {
			lc.MaxFileSize = productionMaxFileSize
		}
	}
	lc.RequireAbsolutePath = !c.relaxed()

	return lc
}
