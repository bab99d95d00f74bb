// Package fixture replays a recorded connectivity snapshot. It stands in for a
// device-side provider when the facts were captured elsewhere, and drives the
// reporter in tests.
//
// A document may be JSON or TOML:
//
//	api_level = 21
//
//	[network_info]
//	connected = true
//	type = 0
//	subtype = 13
//
//	[wifi]
//	ssid = "\"Home\""
//	bssid = "02:00:00:00:00:00"
//	ip_address = 16777343
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
)

// capabilityAPILevel is the first platform API level with the capability query
const capabilityAPILevel = 23

// Packed adapter addresses span the signed and unsigned 32-bit ranges
const (
	minIPAddress = math.MinInt32
	maxIPAddress = math.MaxUint32
)

var transportNames = map[string]classifier.Transport{
	"cellular":  classifier.TransportCellular,
	"wifi":      classifier.TransportWiFi,
	"bluetooth": classifier.TransportBluetooth,
	"ethernet":  classifier.TransportEthernet,
	"vpn":       classifier.TransportVPN,
}

// Document is the on-disk snapshot format
type Document struct {
	APILevel     int                 `json:"api_level" toml:"api_level"`
	Capabilities *CapabilitiesRecord `json:"capabilities,omitempty" toml:"capabilities"`
	NetworkInfo  *NetworkInfoRecord  `json:"network_info,omitempty" toml:"network_info"`
	Wifi         *WifiRecord         `json:"wifi,omitempty" toml:"wifi"`
}

// CapabilitiesRecord lists transports by name
type CapabilitiesRecord struct {
	Transports []string `json:"transports" toml:"transports"`
}

// NetworkInfoRecord is the legacy query result. A missing type is the null type.
type NetworkInfoRecord struct {
	Connected bool `json:"connected" toml:"connected"`
	Type      *int `json:"type,omitempty" toml:"type"`
	Subtype   int  `json:"subtype" toml:"subtype"`
}

// WifiRecord is the adapter query result. Devices record the packed address
// as a signed 32-bit int, so negative values are accepted alongside unsigned
// ones.
type WifiRecord struct {
	SSID      *string `json:"ssid,omitempty" toml:"ssid"`
	BSSID     *string `json:"bssid,omitempty" toml:"bssid"`
	IPAddress int64   `json:"ip_address" toml:"ip_address"`
}

// Provider serves a loaded document
type Provider struct {
	doc Document
}

// Load reads a document from a .json or .toml file
func Load(path string) (*Provider, error) {
	var doc Document

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format: %s", path)
	}

	return New(doc)
}

// New validates a document and wraps it in a provider
func New(doc Document) (*Provider, error) {
	if doc.Capabilities != nil {
		for _, name := range doc.Capabilities.Transports {
			if _, ok := transportNames[strings.ToLower(name)]; !ok {
				return nil, fmt.Errorf("unknown transport: %s", name)
			}
		}
	}
	if doc.Wifi != nil && (doc.Wifi.IPAddress < minIPAddress || doc.Wifi.IPAddress > maxIPAddress) {
		return nil, fmt.Errorf("ip_address out of 32-bit range: %d", doc.Wifi.IPAddress)
	}
	return &Provider{doc: doc}, nil
}

// Name identifies the provider
func (p *Provider) Name() string {
	return "fixture"
}

// SupportsCapabilities reports whether the recorded platform had the
// capability query
func (p *Provider) SupportsCapabilities() bool {
	if p.doc.APILevel == 0 {
		return p.doc.Capabilities != nil
	}
	return p.doc.APILevel >= capabilityAPILevel
}

// ActiveCapabilities returns the recorded capabilities
func (p *Provider) ActiveCapabilities(ctx context.Context) (*classifier.Capabilities, error) {
	if p.doc.Capabilities == nil {
		return nil, nil
	}

	caps := &classifier.Capabilities{}
	for _, name := range p.doc.Capabilities.Transports {
		caps.Transports |= transportNames[strings.ToLower(name)]
	}
	return caps, nil
}

// ActiveNetworkInfo returns the recorded legacy record
func (p *Provider) ActiveNetworkInfo(ctx context.Context) (*classifier.LegacyInfo, error) {
	rec := p.doc.NetworkInfo
	if rec == nil {
		return nil, nil
	}

	info := &classifier.LegacyInfo{
		Connected: rec.Connected,
		Type:      classifier.LegacyTypeNone,
		Subtype:   classifier.SubtypeCode(rec.Subtype),
	}
	if rec.Type != nil {
		info.Type = classifier.LegacyType(*rec.Type)
	}
	return info, nil
}

// WifiInfo returns the recorded adapter record
func (p *Provider) WifiInfo(ctx context.Context) (*classifier.WifiInfo, error) {
	rec := p.doc.Wifi
	if rec == nil {
		return nil, nil
	}
	return &classifier.WifiInfo{
		SSID:      rec.SSID,
		BSSID:     rec.BSSID,
		IPAddress: uint32(rec.IPAddress),
	}, nil
}
