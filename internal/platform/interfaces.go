package platform

import (
	"context"
	"strings"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform/wireless"
)

// ConnectivityProvider abstracts the operating system's connectivity queries
type ConnectivityProvider interface {
	// Name identifies the provider in logs
	Name() string

	// SupportsCapabilities reports whether the platform offers the modern
	// capability query. When false only the legacy query is used.
	SupportsCapabilities() bool

	// ActiveCapabilities returns the transport capabilities of the active
	// network, or nil when there is no active network
	ActiveCapabilities(ctx context.Context) (*classifier.Capabilities, error)

	// ActiveNetworkInfo returns the legacy type/subtype record of the active
	// network, or nil when the connection state is unknown
	ActiveNetworkInfo(ctx context.Context) (*classifier.LegacyInfo, error)

	// WifiInfo returns the wifi adapter record, or nil when there is no
	// wifi adapter
	WifiInfo(ctx context.Context) (*classifier.WifiInfo, error)
}

// LinkQuerier returns the association state of a wifi interface
type LinkQuerier interface {
	Link(ctx context.Context, iface string) (*wireless.LinkInfo, error)
}

// Link describes one network interface as seen by a provider
type Link struct {
	Name       string
	Up         bool
	Transports classifier.Transport
	IPv4       uint32 // packed with classifier.PackIPv4
}

// cellularPrefixes are interface name prefixes used by modem drivers
var cellularPrefixes = []string{"wwan", "rmnet", "ccmni", "usb_rmnet", "qmimux"}

// vpnPrefixes are interface name prefixes used by tunnel drivers
var vpnPrefixes = []string{"tun", "tap", "wg", "ppp", "ipsec"}

// IsCellularName reports whether an interface name belongs to a modem
func IsCellularName(name string) bool {
	return hasAnyPrefix(name, cellularPrefixes)
}

// IsVPNName reports whether an interface name belongs to a tunnel
func IsVPNName(name string) bool {
	return hasAnyPrefix(name, vpnPrefixes)
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// UnderlyingLink returns the link the legacy query reports for active. The
// legacy query never reports a tunnel, so a VPN-only active link is replaced
// by the first other link that is up. When there is none, active is returned.
func UnderlyingLink(active *Link, links []Link) *Link {
	if active == nil || active.Transports != classifier.TransportVPN {
		return active
	}

	for i := range links {
		if links[i].Name == active.Name || !links[i].Up {
			continue
		}
		if links[i].Transports == 0 || links[i].Transports == classifier.TransportVPN {
			continue
		}
		return &links[i]
	}

	return active
}

// LegacyInfoFor derives the legacy type/subtype record from a link. The
// transport priority matches the modern classification so both query paths
// agree on the same link.
func LegacyInfoFor(link *Link) *classifier.LegacyInfo {
	if link == nil {
		return nil
	}

	info := &classifier.LegacyInfo{
		Connected: link.Up,
		Type:      classifier.LegacyTypeNone,
		Subtype:   classifier.SubtypeCode(-1),
	}

	switch {
	case link.Transports.Has(classifier.TransportWiFi):
		info.Type = classifier.LegacyTypeWiFi
	case link.Transports.Has(classifier.TransportEthernet):
		info.Type = classifier.LegacyTypeEthernet
	case link.Transports.Has(classifier.TransportCellular):
		info.Type = classifier.LegacyTypeMobile
		// the radio technology is not visible from the host side
		info.Subtype = classifier.SubtypeCodeUnknown
	case link.Transports.Has(classifier.TransportBluetooth):
		info.Type = classifier.LegacyTypeBluetooth
	case link.Transports.Has(classifier.TransportVPN):
		info.Type = classifier.LegacyTypeVPN
	}

	return info
}
