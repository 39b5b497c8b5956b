package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "svlower.toml"

type config struct {
	Lower       lowerConfig       `toml:"lower"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Driver      driverConfig      `toml:"driver"`
}

type lowerConfig struct {
	PairNonAnsiPorts bool `toml:"pair_nonansi_ports"`
	WarnDecimalXZ    bool `toml:"warn_decimal_xz"`
}

type diagnosticsConfig struct {
	Max              int    `toml:"max"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	Format           string `toml:"format"`
}

type driverConfig struct {
	Jobs      int  `toml:"jobs"`
	DiskCache bool `toml:"disk_cache"`
}

func defaultConfig() config {
	return config{
		Lower:       lowerConfig{PairNonAnsiPorts: true, WarnDecimalXZ: true},
		Diagnostics: diagnosticsConfig{Max: 100, Format: "pretty"},
	}
}

// findConfig walks up from startDir looking for svlower.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig decodes path over the defaults; keys the file does not set
// keep their default value.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig loads explicit when given, otherwise the nearest
// svlower.toml above startDir. Without either the defaults apply and the
// returned path is empty.
func resolveConfig(explicit, startDir string) (config, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return config{}, "", err
		}
		if !ok {
			return defaultConfig(), "", nil
		}
		path = found
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return config{}, "", err
	}
	return cfg, path, nil
}

func (c *config) validate() error {
	c.Diagnostics.Format = strings.ToLower(strings.TrimSpace(c.Diagnostics.Format))
	switch c.Diagnostics.Format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("[diagnostics].format must be pretty, json or short, got %q", c.Diagnostics.Format)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative")
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("[driver].jobs must not be negative")
	}
	return nil
}
