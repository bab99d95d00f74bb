// Package pcapdev implements a connectivity provider on top of libpcap device
// enumeration. libpcap reports, per device, whether it is up, running,
// wireless and connected, which is enough to classify the active network on
// any platform libpcap supports.
package pcapdev

import (
	"context"
	"sort"

	"github.com/google/gopacket/pcap"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
	"github.com/mosiko1234/heimdal/connectivity/internal/errors"
	"github.com/mosiko1234/heimdal/connectivity/internal/logger"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform"
)

// PCAP_IF_* flags from pcap.h
const (
	ifLoopback               = 0x00000001
	ifUp                     = 0x00000002
	ifRunning                = 0x00000004
	ifWireless               = 0x00000008
	ifConnectionStatus       = 0x00000030
	ifConnectionDisconnected = 0x00000020
)

// Provider classifies pcap devices
type Provider struct {
	prefer      string
	querier     platform.LinkQuerier
	findAllDevs func() ([]pcap.Interface, error)
	logger      *logger.Logger
}

// NewProvider creates a pcap provider. prefer names the device to use when it
// qualifies as active; querier may be nil.
func NewProvider(prefer string, querier platform.LinkQuerier) *Provider {
	return &Provider{
		prefer:      prefer,
		querier:     querier,
		findAllDevs: pcap.FindAllDevs,
		logger:      logger.NewComponentLogger("Pcap"),
	}
}

// IsAvailable checks if libpcap can enumerate devices on this system
func IsAvailable() bool {
	_, err := pcap.FindAllDevs()
	return err == nil
}

// Name identifies the provider
func (p *Provider) Name() string {
	return "pcap"
}

// SupportsCapabilities is always true; libpcap reports the wireless flag
func (p *Provider) SupportsCapabilities() bool {
	return true
}

// ActiveCapabilities returns the transports of the active device
func (p *Provider) ActiveCapabilities(ctx context.Context) (*classifier.Capabilities, error) {
	link, _, err := p.activeLink()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "ActiveCapabilities", err)
	}
	if link == nil {
		return nil, nil
	}
	return &classifier.Capabilities{Transports: link.Transports}, nil
}

// ActiveNetworkInfo returns the legacy record of the active device, or of the
// network underneath it when the active device is a tunnel
func (p *Provider) ActiveNetworkInfo(ctx context.Context) (*classifier.LegacyInfo, error) {
	link, links, err := p.activeLink()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "ActiveNetworkInfo", err)
	}
	return platform.LegacyInfoFor(platform.UnderlyingLink(link, links)), nil
}

// WifiInfo returns the adapter record of the first active wireless device
func (p *Provider) WifiInfo(ctx context.Context) (*classifier.WifiInfo, error) {
	links, err := p.Links()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "WifiInfo", err)
	}

	for _, link := range links {
		if !link.Up || !link.Transports.Has(classifier.TransportWiFi) {
			continue
		}

		info := &classifier.WifiInfo{IPAddress: link.IPv4}
		if p.querier != nil {
			linkInfo, err := p.querier.Link(ctx, link.Name)
			if err != nil {
				p.logger.Warn("Failed to query wifi link of %s: %v", link.Name, err)
			} else {
				info.SSID = linkInfo.SSID
				info.BSSID = linkInfo.BSSID
			}
		}
		return info, nil
	}

	return nil, nil
}

// Links lists every non-loopback device that has an IPv4 address, active
// devices first, then by name
func (p *Provider) Links() ([]platform.Link, error) {
	devices, err := p.findAllDevs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	links := make([]platform.Link, 0, len(devices))
	for _, dev := range devices {
		link, ok := linkFromDevice(dev)
		if !ok {
			continue
		}
		links = append(links, link)
	}

	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Up != links[j].Up {
			return links[i].Up
		}
		return links[i].Name < links[j].Name
	})

	p.logger.Debug("Found %d candidate devices out of %d", len(links), len(devices))
	return links, nil
}

func (p *Provider) activeLink() (*platform.Link, []platform.Link, error) {
	links, err := p.Links()
	if err != nil {
		return nil, nil, err
	}

	if p.prefer != "" {
		for i := range links {
			if links[i].Name == p.prefer && links[i].Up {
				return &links[i], links, nil
			}
		}
	}

	for i := range links {
		if links[i].Up {
			return &links[i], links, nil
		}
	}

	return nil, links, nil
}

func linkFromDevice(dev pcap.Interface) (platform.Link, bool) {
	if dev.Flags&ifLoopback != 0 {
		return platform.Link{}, false
	}

	var ipv4 uint32
	for _, addr := range dev.Addresses {
		if packed := classifier.PackIPv4(addr.IP); packed != 0 {
			ipv4 = packed
			break
		}
	}
	if ipv4 == 0 {
		return platform.Link{}, false
	}

	link := platform.Link{
		Name: dev.Name,
		Up: dev.Flags&ifUp != 0 && dev.Flags&ifRunning != 0 &&
			dev.Flags&ifConnectionStatus != ifConnectionDisconnected,
		IPv4: ipv4,
	}

	switch {
	case dev.Flags&ifWireless != 0:
		link.Transports = classifier.TransportWiFi
	case platform.IsCellularName(dev.Name):
		link.Transports = classifier.TransportCellular
	case platform.IsVPNName(dev.Name):
		link.Transports = classifier.TransportVPN
	default:
		link.Transports = classifier.TransportEthernet
	}

	return link, true
}
