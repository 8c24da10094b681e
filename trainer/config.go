// Copyright 2025 The StepEVM Authors
// This file is part of StepEVM.
//
// StepEVM is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// StepEVM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with StepEVM. If not, see <http://www.gnu.org/licenses/>.

package trainer

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config drives the interactive trainer.
type Config struct {
	// GasLimit is the budget of each fresh machine.
	GasLimit uint64 `toml:"gas_limit"`
	// Seed seeds the instruction generator; 0 means time-based.
	Seed int64 `toml:"seed"`
	// Families restricts generated opcodes to the named families
	// (arithmetic, comparison, bitwise, memory, stack, storage, misc).
	// Empty means all supported families.
	Families []string `toml:"families"`
	// MaxPushBytes caps the payload size of generated pushes, so quiz
	// operands stay readable. 0 means the full 32 bytes.
	MaxPushBytes int `toml:"max_push_bytes"`
	// Slots is the number of distinct storage slots the generator draws
	// from, keeping warm/cold transitions observable.
	Slots int `toml:"slots"`
}

// DefaultConfig returns the trainer defaults.
func DefaultConfig() Config {
	return Config{
		GasLimit:     1_000_000,
		MaxPushBytes: 4,
		Slots:        8,
	}
}

// LoadConfig reads a TOML config file, applying defaults for absent
// keys. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and family names.
func (c Config) Validate() error {
	if c.GasLimit == 0 {
		return fmt.Errorf("gas_limit must be positive")
	}
	if c.MaxPushBytes < 0 || c.MaxPushBytes > 32 {
		return fmt.Errorf("max_push_bytes %d out of range [0, 32]", c.MaxPushBytes)
	}
	if c.Slots < 0 {
		return fmt.Errorf("slots must not be negative")
	}
	if _, err := parseFamilies(c.Families); err != nil {
		return err
	}
	return nil
}
