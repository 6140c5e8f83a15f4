/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the configuration of the name tables.
type Config struct {
	Core struct {
		// LogLevel is one of TRACE, DEBUG, INFO, WARN, ERROR, FATAL.
		LogLevel string `toml:"log_level" yaml:"log_level"`
	} `toml:"core" yaml:"core"`

	Tables struct {
		ContentStore struct {
			// Capacity is the maximum number of entries, 0 for unbounded.
			Capacity int `toml:"capacity" yaml:"capacity"`
			// ReplacementPolicy is one of none, lru, lfu, random.
			ReplacementPolicy string `toml:"replacement_policy" yaml:"replacement_policy"`
			// Admit controls whether new Data is inserted.
			Admit bool `toml:"admit" yaml:"admit"`
			// Serve controls whether cached Data is returned.
			Serve bool `toml:"serve" yaml:"serve"`
			// PoolBlockSize is the size of the off-heap blocks holding Data wires.
			PoolBlockSize int `toml:"pool_block_size" yaml:"pool_block_size"`
		} `toml:"content_store" yaml:"content_store"`
	} `toml:"tables" yaml:"tables"`
}

var config = DefaultConfig()

// DefaultConfig returns the configuration used when no file has been loaded.
func DefaultConfig() *Config {
	c := new(Config)
	c.Core.LogLevel = "INFO"
	c.Tables.ContentStore.Capacity = 1024
	c.Tables.ContentStore.ReplacementPolicy = "lru"
	c.Tables.ContentStore.Admit = true
	c.Tables.ContentStore.Serve = true
	c.Tables.ContentStore.PoolBlockSize = 8800
	return c
}

// GetConfig returns the active configuration.
func GetConfig() *Config {
	return config
}

// SetConfig replaces the active configuration.
func SetConfig(c *Config) {
	if c == nil {
		c = DefaultConfig()
	}
	config = c
}

// LoadConfig loads the configuration from the specified file and makes it active.
// Files ending in .yml or .yaml are decoded as YAML, everything else as TOML.
// Keys missing from the file keep their default values.
func LoadConfig(file string) error {
	c, err := ParseConfigFile(file)
	if err != nil {
		return err
	}
	config = c
	return nil
}

// ParseConfigFile decodes a configuration file on top of the defaults without activating it.
func ParseConfigFile(file string) (*Config, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read configuration file %s", file)
	}

	c := DefaultConfig()
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yml", ".yaml":
		if err = yaml.UnmarshalWithOptions(raw, c, yaml.Strict()); err != nil {
			return nil, errors.Wrapf(err, "unable to parse configuration file %s", file)
		}
	case ".toml", "":
		if err = toml.Unmarshal(raw, c); err != nil {
			return nil, errors.Wrapf(err, "unable to parse configuration file %s", file)
		}
	default:
		return nil, errors.Wrap(ErrConfigFormat, file)
	}
	return c, nil
}
