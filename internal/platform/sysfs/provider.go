// Package sysfs implements the connectivity provider for Linux hosts.
//
// The active network is the interface carrying the default route, found by
// parsing /proc/net/route. Each interface's transports come from its sysfs
// directory under /sys/class/net:
//   - wireless/ or phy80211/, or DEVTYPE=wlan in uevent: wifi
//   - DEVTYPE=wwan or a modem interface name: cellular
//   - DEVTYPE=bluetooth: bluetooth
//   - tunnel names or ARPHRD_NONE/ARPHRD_PPP: vpn
//   - ARPHRD_ETHER otherwise: ethernet
//
// When no default route exists the first interface that is up is used. When
// nothing is up there is no active network, which is not an error.
package sysfs

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
	"github.com/mosiko1234/heimdal/connectivity/internal/errors"
	"github.com/mosiko1234/heimdal/connectivity/internal/logger"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform"
)

// ARPHRD values from if_arp.h
const (
	arphrdEther    = 1
	arphrdPPP      = 512
	arphrdLoopback = 772
	arphrdNone     = 65534
)

const rtfUp = 0x0001

// Provider reads connectivity facts from sysfs and procfs
type Provider struct {
	netRoot   string
	routeFile string
	querier   platform.LinkQuerier
	ipv4      func(iface string) (net.IP, error)
	logger    *logger.Logger
}

// NewProvider creates a sysfs provider. querier may be nil, in which case the
// wifi SSID and BSSID are never reported.
func NewProvider(netRoot, routeFile string, querier platform.LinkQuerier) *Provider {
	return &Provider{
		netRoot:   netRoot,
		routeFile: routeFile,
		querier:   querier,
		ipv4:      interfaceIPv4,
		logger:    logger.NewComponentLogger("Sysfs"),
	}
}

// Name identifies the provider
func (p *Provider) Name() string {
	return "sysfs"
}

// SupportsCapabilities is always true; sysfs exposes the transport of every link
func (p *Provider) SupportsCapabilities() bool {
	return true
}

// ActiveCapabilities returns the transports of the active link
func (p *Provider) ActiveCapabilities(ctx context.Context) (*classifier.Capabilities, error) {
	link, _, err := p.activeLink()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "ActiveCapabilities", err)
	}
	if link == nil || !link.Up {
		return nil, nil
	}
	return &classifier.Capabilities{Transports: link.Transports}, nil
}

// ActiveNetworkInfo returns the legacy record of the active link, or of the
// network underneath it when the active link is a tunnel
func (p *Provider) ActiveNetworkInfo(ctx context.Context) (*classifier.LegacyInfo, error) {
	link, links, err := p.activeLink()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "ActiveNetworkInfo", err)
	}
	return platform.LegacyInfoFor(platform.UnderlyingLink(link, links)), nil
}

// WifiInfo returns the adapter record of the active wifi link, or of the first
// wifi link that is up when the active network is not wifi
func (p *Provider) WifiInfo(ctx context.Context) (*classifier.WifiInfo, error) {
	active, links, err := p.activeLink()
	if err != nil {
		return nil, errors.NewComponentError(p.Name(), "WifiInfo", err)
	}

	var wifi *platform.Link
	if active != nil && active.Transports.Has(classifier.TransportWiFi) {
		wifi = active
	} else {
		for i := range links {
			if links[i].Up && links[i].Transports.Has(classifier.TransportWiFi) {
				wifi = &links[i]
				break
			}
		}
	}
	if wifi == nil {
		return nil, nil
	}

	info := &classifier.WifiInfo{}
	if ip, err := p.ipv4(wifi.Name); err == nil {
		info.IPAddress = classifier.PackIPv4(ip)
	} else {
		p.logger.Debug("No IPv4 address on %s: %v", wifi.Name, err)
	}

	if p.querier != nil {
		linkInfo, err := p.querier.Link(ctx, wifi.Name)
		if err != nil {
			p.logger.Warn("Failed to query wifi link of %s: %v", wifi.Name, err)
		} else {
			info.SSID = linkInfo.SSID
			info.BSSID = linkInfo.BSSID
		}
	}

	return info, nil
}

// Links lists every non-loopback interface, sorted by name
func (p *Provider) Links() ([]platform.Link, error) {
	entries, err := os.ReadDir(p.netRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list %s", p.netRoot)
	}

	links := make([]platform.Link, 0, len(entries))
	for _, entry := range entries {
		link, ok := p.readLink(entry.Name())
		if !ok {
			continue
		}
		links = append(links, link)
	}

	sort.Slice(links, func(i, j int) bool { return links[i].Name < links[j].Name })
	return links, nil
}

func (p *Provider) readLink(name string) (platform.Link, bool) {
	dir := filepath.Join(p.netRoot, name)

	arphrd, _ := strconv.Atoi(p.readAttr(dir, "type"))
	if arphrd == arphrdLoopback || name == "lo" {
		return platform.Link{}, false
	}

	operstate := p.readAttr(dir, "operstate")
	carrier := p.readAttr(dir, "carrier")
	devtype := ueventValue(p.readAttr(dir, "uevent"), "DEVTYPE")

	link := platform.Link{
		Name: name,
		Up:   operstate == "up" || (operstate == "unknown" && carrier == "1"),
	}

	switch {
	case exists(filepath.Join(dir, "wireless")) || exists(filepath.Join(dir, "phy80211")) || devtype == "wlan":
		link.Transports = classifier.TransportWiFi
	case devtype == "wwan" || platform.IsCellularName(name):
		link.Transports = classifier.TransportCellular
	case devtype == "bluetooth":
		link.Transports = classifier.TransportBluetooth
	case platform.IsVPNName(name) || arphrd == arphrdNone || arphrd == arphrdPPP:
		link.Transports = classifier.TransportVPN
	case arphrd == arphrdEther:
		link.Transports = classifier.TransportEthernet
	}

	return link, true
}

// activeLink returns the link carrying the default route, falling back to the
// first link that is up, along with every link. The link is nil when neither
// exists.
func (p *Provider) activeLink() (*platform.Link, []platform.Link, error) {
	links, err := p.Links()
	if err != nil {
		return nil, nil, err
	}

	iface, err := p.defaultRouteInterface()
	if err != nil {
		p.logger.Debug("No default route: %v", err)
	}

	if iface != "" {
		for i := range links {
			if links[i].Name == iface {
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

// defaultRouteInterface parses the route table for the default route with the
// lowest metric
func (p *Provider) defaultRouteInterface() (string, error) {
	file, err := os.Open(p.routeFile)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", p.routeFile, err)
	}
	defer errors.SafeClose(file, p.routeFile)

	scanner := bufio.NewScanner(file)

	// Skip header line
	if !scanner.Scan() {
		return "", fmt.Errorf("empty route table")
	}

	best := ""
	bestMetric := -1
	for scanner.Scan() {
		// Iface Destination Gateway Flags RefCnt Use Metric Mask ...
		fields := strings.Fields(scanner.Text())
		if len(fields) < 8 || fields[1] != "00000000" || fields[7] != "00000000" {
			continue
		}

		flags, err := strconv.ParseUint(fields[3], 16, 32)
		if err != nil || flags&rtfUp == 0 {
			continue
		}

		metric, err := strconv.Atoi(fields[6])
		if err != nil {
			continue
		}

		if bestMetric < 0 || metric < bestMetric {
			best, bestMetric = fields[0], metric
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading route table: %w", err)
	}
	if best == "" {
		return "", errors.ErrNoActiveInterface
	}

	return best, nil
}

func (p *Provider) readAttr(dir, attr string) string {
	data, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func ueventValue(uevent, key string) string {
	for _, line := range strings.Split(uevent, "\n") {
		if k, v, ok := strings.Cut(strings.TrimSpace(line), "="); ok && k == key {
			return v
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// interfaceIPv4 returns the first IPv4 address of an interface
func interfaceIPv4(name string) (net.IP, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, err
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.To4() != nil {
			return ipNet.IP, nil
		}
	}

	return nil, fmt.Errorf("no IPv4 address found")
}
