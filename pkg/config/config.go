// Package config loads the TOML configuration of the krypton command line
// tool.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/logger"
	"github.com/Caqil/krypton/pkg/musig"
)

// Config is the on-disk configuration
type Config struct {
	Engine struct {
		Curve       string `toml:"curve"`
		KeyEncoding int    `toml:"key-encoding"`
	} `toml:"engine"`
	Log struct {
		Level  string `toml:"level"`
		Pretty bool   `toml:"pretty"`
		Caller bool   `toml:"caller"`
	} `toml:"log"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	cfg.Engine.Curve = curve.Secp256k1.String()
	cfg.Log.Level = "warn"
	return &cfg
}

// Load reads a TOML file on top of the defaults
func Load(file string) (*Config, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

// Parse decodes TOML data on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the curve name, key encoding and log level
func (c *Config) Validate() error {
	ct, err := c.CurveType()
	if err != nil {
		return err
	}
	if c.Engine.KeyEncoding != 0 {
		cv, err := curve.NewCurve(ct)
		if err != nil {
			return err
		}
		if !curve.IsPointSize(cv, c.Engine.KeyEncoding) {
			return fmt.Errorf("key-encoding %d for %s: %w", c.Engine.KeyEncoding, ct, curve.ErrInvalidEncodingSize)
		}
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CurveType returns the configured curve
func (c *Config) CurveType() (curve.CurveType, error) {
	return curve.ParseCurveType(c.Engine.Curve)
}

// LoggerConfig maps the log section to a logger configuration
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Pretty = c.Log.Pretty
	lc.CallerEnabled = c.Log.Caller
	return lc
}

// NewEngine builds an engine from the configuration
func (c *Config) NewEngine(opts ...musig.Option) (*musig.Engine, error) {
	ct, err := c.CurveType()
	if err != nil {
		return nil, err
	}
	base := []musig.Option{musig.WithLogger(logger.New(c.LoggerConfig()))}
	if c.Engine.KeyEncoding != 0 {
		base = append(base, musig.WithKeyEncoding(c.Engine.KeyEncoding))
	}
	return musig.NewEngine(ct, append(base, opts...)...)
}
