package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider.Kind != ProviderSysfs {
		t.Errorf("expected provider 'sysfs', got '%s'", cfg.Provider.Kind)
	}
	if cfg.Provider.ForceLegacy {
		t.Error("expected force_legacy to be false")
	}
	if cfg.Sysfs.NetRoot != "/sys/class/net" {
		t.Errorf("expected net root '/sys/class/net', got '%s'", cfg.Sysfs.NetRoot)
	}
	if cfg.Sysfs.RouteFile != "/proc/net/route" {
		t.Errorf("expected route file '/proc/net/route', got '%s'", cfg.Sysfs.RouteFile)
	}
	if cfg.Wireless.IwPath != "iw" {
		t.Errorf("expected iw path 'iw', got '%s'", cfg.Wireless.IwPath)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected output format 'text', got '%s'", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "netstate.json")

	testConfig := DefaultConfig()
	testConfig.Provider.Kind = ProviderPcap
	testConfig.Pcap.PreferInterface = "wlan0"
	testConfig.Output.Format = "json"
	testConfig.Logging.Level = "debug"

	data, err := json.MarshalIndent(testConfig, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, ProviderPcap, cfg.Provider.Kind)
	assert.Equal(t, "wlan0", cfg.Pcap.PreferInterface)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "netstate.toml")

	content := `
[provider]
kind = "fixture"
force_legacy = true

[fixture]
path = "/etc/netstate/snapshot.toml"

[wireless]
timeout_ms = 500
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, ProviderFixture, cfg.Provider.Kind)
	assert.True(t, cfg.Provider.ForceLegacy)
	assert.Equal(t, "/etc/netstate/snapshot.toml", cfg.Fixture.Path)
	assert.Equal(t, 500, cfg.Wireless.TimeoutMS)
	// untouched sections keep their defaults
	assert.Equal(t, "iw", cfg.Wireless.IwPath)
	assert.Equal(t, "/sys/class/net", cfg.Sysfs.NetRoot)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadConfigUnsupportedFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "netstate.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("provider: sysfs\n"), 0644))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "netstate.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"provider":{"kind":"netlink"}}`), 0644))

	_, err := LoadConfig(configPath)
	assert.ErrorContains(t, err, "invalid provider")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		expectErr bool
	}{
		{
			name:      "valid default config",
			modify:    func(c *Config) {},
			expectErr: false,
		},
		{
			name: "unknown provider",
			modify: func(c *Config) {
				c.Provider.Kind = "netlink"
			},
			expectErr: true,
		},
		{
			name: "empty sysfs root",
			modify: func(c *Config) {
				c.Sysfs.NetRoot = ""
			},
			expectErr: true,
		},
		{
			name: "empty sysfs root ignored for pcap",
			modify: func(c *Config) {
				c.Provider.Kind = ProviderPcap
				c.Sysfs.NetRoot = ""
			},
			expectErr: false,
		},
		{
			name: "fixture without path",
			modify: func(c *Config) {
				c.Provider.Kind = ProviderFixture
			},
			expectErr: true,
		},
		{
			name: "zero wireless timeout",
			modify: func(c *Config) {
				c.Wireless.TimeoutMS = 0
			},
			expectErr: true,
		},
		{
			name: "empty iw path",
			modify: func(c *Config) {
				c.Wireless.IwPath = ""
			},
			expectErr: true,
		},
		{
			name: "invalid output format",
			modify: func(c *Config) {
				c.Output.Format = "yaml"
			},
			expectErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "invalid"
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
