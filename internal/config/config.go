// Package config loads the command line tool configuration from TOML files.
package config

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/ghettovoice/urlobject"
	"github.com/ghettovoice/urlobject/internal/errorutil"
	"github.com/ghettovoice/urlobject/internal/grammar"
	"github.com/ghettovoice/urlobject/internal/log"
)

// ErrInvalidConfig is returned when a config file can't be decoded or holds invalid values.
const ErrInvalidConfig errorutil.Error = "invalid config"

// Config is the command line tool configuration.
//
//	[log]
//	level = "debug"
//	dev = false
//
//	[ports]
//	gemini = 1965
type Config struct {
	Log   LogConfig        `toml:"log"`
	Ports map[string]int64 `toml:"ports"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `toml:"level"`
	// Dev selects the developer log handler.
	Dev bool `toml:"dev"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Log: LogConfig{Level: "info"}}
}

// Load reads and validates the config file at path from fs.
func Load(fs afero.Fs, path string) (*Config, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("open config file %q: %w", path, err))
	}
	defer f.Close()

	return errtrace.Wrap2(Decode(f))
}

// Decode reads and validates a TOML config from r.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, "unknown keys %s", strings.Join(keys, ", ")))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return cfg, nil
}

// Validate checks the log level and every scheme port.
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	for _, scheme := range slices.Sorted(maps.Keys(c.Ports)) {
		port := c.Ports[scheme]
		if !grammar.IsScheme(scheme) {
			errs = append(errs, fmt.Errorf("scheme %q is not valid", scheme))
		}
		if port < 0 || port > math.MaxUint16 {
			errs = append(errs, fmt.Errorf("port %d of scheme %q is out of range", port, scheme))
		}
	}
	if len(errs) > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, errors.Join(errs...)))
	}
	return nil
}

// LogLevel returns the parsed log level, [slog.LevelInfo] if the level is invalid.
func (c *Config) LogLevel() slog.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// RegisterPorts adds the configured scheme ports to p.
func (c *Config) RegisterPorts(p *urlobject.Ports) {
	for scheme, port := range c.Ports {
		p.Set(scheme, uint16(port))
	}
}
