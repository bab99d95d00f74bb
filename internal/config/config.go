// Package config provides configuration management for netstate.
//
// The configuration is read from a JSON or TOML file, selected by extension,
// and layered over DefaultConfig. Sections:
//   - Provider: which connectivity provider to use and whether to force the
//     legacy type/subtype query
//   - Sysfs: roots of the Linux interface and route tables
//   - Pcap: preferred capture device
//   - Wireless: the iw binary and its timeout
//   - Fixture: snapshot document replayed by the fixture provider
//   - Output: text or json
//   - Logging: level and optional log file
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Provider kinds
const (
	ProviderSysfs   = "sysfs"
	ProviderPcap    = "pcap"
	ProviderFixture = "fixture"
)

// Config represents the complete application configuration
type Config struct {
	Provider ProviderConfig `json:"provider" toml:"provider"`
	Sysfs    SysfsConfig    `json:"sysfs" toml:"sysfs"`
	Pcap     PcapConfig     `json:"pcap" toml:"pcap"`
	Wireless WirelessConfig `json:"wireless" toml:"wireless"`
	Fixture  FixtureConfig  `json:"fixture" toml:"fixture"`
	Output   OutputConfig   `json:"output" toml:"output"`
	Logging  LoggingConfig  `json:"logging" toml:"logging"`
}

// ProviderConfig selects the connectivity provider
type ProviderConfig struct {
	Kind        string `json:"kind" toml:"kind"`
	ForceLegacy bool   `json:"force_legacy" toml:"force_legacy"`
}

// SysfsConfig contains the Linux sysfs provider settings
type SysfsConfig struct {
	NetRoot   string `json:"net_root" toml:"net_root"`
	RouteFile string `json:"route_file" toml:"route_file"`
}

// PcapConfig contains the pcap provider settings
type PcapConfig struct {
	PreferInterface string `json:"prefer_interface" toml:"prefer_interface"`
}

// WirelessConfig contains the wireless link query settings
type WirelessConfig struct {
	IwPath    string `json:"iw_path" toml:"iw_path"`
	TimeoutMS int    `json:"timeout_ms" toml:"timeout_ms"`
}

// FixtureConfig contains the fixture provider settings
type FixtureConfig struct {
	Path string `json:"path" toml:"path"`
}

// OutputConfig contains CLI output settings
type OutputConfig struct {
	Format string `json:"format" toml:"format"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `json:"level" toml:"level"`
	File  string `json:"file" toml:"file"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Kind:        ProviderSysfs,
			ForceLegacy: false,
		},
		Sysfs: SysfsConfig{
			NetRoot:   "/sys/class/net",
			RouteFile: "/proc/net/route",
		},
		Wireless: WirelessConfig{
			IwPath:    "iw",
			TimeoutMS: 2000,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// LoadConfig loads configuration from a JSON or TOML file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	case ".json", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", filepath.Ext(path))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Provider.Kind {
	case ProviderSysfs:
		if c.Sysfs.NetRoot == "" {
			return fmt.Errorf("sysfs net root cannot be empty")
		}
		if c.Sysfs.RouteFile == "" {
			return fmt.Errorf("sysfs route file cannot be empty")
		}
	case ProviderPcap:
	case ProviderFixture:
		if c.Fixture.Path == "" {
			return fmt.Errorf("fixture path cannot be empty when the fixture provider is selected")
		}
	default:
		return fmt.Errorf("invalid provider: %s (must be sysfs, pcap, or fixture)", c.Provider.Kind)
	}

	if c.Wireless.IwPath == "" {
		return fmt.Errorf("iw path cannot be empty")
	}
	if c.Wireless.TimeoutMS < 1 {
		return fmt.Errorf("wireless timeout must be at least 1 millisecond")
	}

	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s (must be text or json)", c.Output.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}
