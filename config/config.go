/*
	Tripcal
	Copyright (c) 2024 Tripcal Authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package config loads the YAML run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero values are usable; a
// missing file yields Default().
type Config struct {
	// APIKey authenticates place lookups. Lookups are skipped when it
	// is empty, regardless of LookupEnabled.
	APIKey string `yaml:"api_key"`

	// LookupEnabled turns place enrichment on.
	LookupEnabled bool `yaml:"lookup_enabled"`

	// Languages maps IANA zone ids (or the key "default") to the
	// language code requested from the place service.
	Languages map[string]string `yaml:"languages"`

	// RequestsPerHour caps lookup throughput; 0 disables the limiter.
	RequestsPerHour int `yaml:"requests_per_hour"`

	// BurstSize is how many limiter tokens may accumulate.
	BurstSize int `yaml:"burst_size"`

	// OutputDir receives the .ics files; empty means alongside each
	// input file.
	OutputDir string `yaml:"output_dir"`

	// Concurrency caps simultaneous enrichment jobs per file.
	Concurrency int `yaml:"concurrency"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RequestsPerHour: 6000,
		BurstSize:       10,
		Concurrency:     4,
	}
}

// Load reads the configuration at path. A missing file is not an
// error: defaults are returned so the tool works with zero setup.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps out-of-range values instead of failing on them.
func (c *Config) Normalize() {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.RequestsPerHour < 0 {
		c.RequestsPerHour = 0
	}
	if c.BurstSize < 1 {
		c.BurstSize = 1
	}
	if c.APIKey == "" {
		c.LookupEnabled = false
	}
}
