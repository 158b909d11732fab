// Package memory implements the main-memory model: latency and burst
// transfer cost, a 16-region address-range heat map, and bandwidth
// figures. It never stores or transfers data payloads, only simulates
// their cost, per spec.md §3's address-only Access data model.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
)

// Type identifies the memory technology, which selects the bandwidth
// multiplier used in peak-bandwidth calculations (spec.md §4.5 step 7).
type Type int

const (
	// DDR3 memory.
	DDR3 Type = iota
	// DDR4 memory.
	DDR4
	// DDR5 memory.
	DDR5
	// SRAM memory (e.g. a scratchpad or unified cache acting as backing
	// store).
	SRAM
	// Custom memory with no double-data-rate assumption.
	Custom
)

// String returns the human-readable memory type name.
func (t Type) String() string {
	switch t {
	case DDR3:
		return "DDR3"
	case DDR4:
		return "DDR4"
	case DDR5:
		return "DDR5"
	case SRAM:
		return "SRAM"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// isDDR reports whether t uses double-data-rate transfer (bandwidth
// multiplier k=2 in spec.md §4.5 step 7), as opposed to k=1 for
// everything else.
func (t Type) isDDR() bool {
	return t == DDR3 || t == DDR4 || t == DDR5
}

// Config holds the parameters of a main-memory model.
type Config struct {
	// SizeMB is the physical memory size in megabytes.
	SizeMB int `json:"size_mb"`
	// LatencyCycles is the fixed access latency, excluding burst
	// transfer cycles.
	LatencyCycles uint64 `json:"latency_cycles"`
	// BusWidthBits is the data bus width: 32, 64, 128, or 256.
	BusWidthBits int `json:"bus_width_bits"`
	// FrequencyMHz is the memory clock frequency.
	FrequencyMHz float64 `json:"frequency_mhz"`
	// MemoryType selects the DDR bandwidth multiplier.
	MemoryType Type `json:"memory_type"`
	// BurstLength is the number of transfers per burst.
	BurstLength int `json:"burst_length"`
}

// DefaultConfig returns a representative DDR4 configuration.
func DefaultConfig() Config {
	return Config{
		SizeMB:        4096,
		LatencyCycles: 100,
		BusWidthBits:  64,
		FrequencyMHz:  1600,
		MemoryType:    DDR4,
		BurstLength:   8,
	}
}

// Validate checks that c's fields are within the ranges spec.md §3
// requires.
func (c Config) Validate() error {
	if c.SizeMB <= 0 {
		return fmt.Errorf("size_mb must be > 0")
	}
	switch c.BusWidthBits {
	case 32, 64, 128, 256:
	default:
		return fmt.Errorf("bus_width_bits must be one of 32, 64, 128, 256")
	}
	if c.FrequencyMHz <= 0 {
		return fmt.Errorf("frequency_mhz must be > 0")
	}
	if c.BurstLength <= 0 {
		return fmt.Errorf("burst_length must be > 0")
	}
	if c.MemoryType < DDR3 || c.MemoryType > Custom {
		return fmt.Errorf("memory_type out of range")
	}
	return nil
}

// Clone returns a copy of c.
func (c Config) Clone() Config {
	return c
}

// LoadConfig loads a memory Config from a JSON file, starting from
// DefaultConfig so omitted fields keep sane defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read memory config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse memory config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid memory config: %w", err)
	}
	return config, nil
}

// SaveConfig writes c to path as indented JSON.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize memory config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write memory config file: %w", err)
	}
	return nil
}
