package platform

import (
	"testing"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
)

func TestInterfaceNameHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		cellular bool
		vpn      bool
	}{
		{"wwan0", true, false},
		{"rmnet_data0", true, false},
		{"ccmni1", true, false},
		{"wlan0", false, false},
		{"eth0", false, false},
		{"tun0", false, true},
		{"wg0", false, true},
		{"ppp0", false, true},
	}

	for _, tt := range tests {
		if IsCellularName(tt.name) != tt.cellular {
			t.Errorf("IsCellularName(%q) = %v, want %v", tt.name, !tt.cellular, tt.cellular)
		}
		if IsVPNName(tt.name) != tt.vpn {
			t.Errorf("IsVPNName(%q) = %v, want %v", tt.name, !tt.vpn, tt.vpn)
		}
	}
}

func TestLegacyInfoFor(t *testing.T) {
	if LegacyInfoFor(nil) != nil {
		t.Error("nil link should give nil info")
	}

	tests := []struct {
		name     string
		link     Link
		expected classifier.LegacyType
		subtype  classifier.SubtypeCode
		primary  classifier.NetworkType
	}{
		{"wifi", Link{Up: true, Transports: classifier.TransportWiFi}, classifier.LegacyTypeWiFi, -1, classifier.NetworkTypeWiFi},
		{"ethernet", Link{Up: true, Transports: classifier.TransportEthernet}, classifier.LegacyTypeEthernet, -1, classifier.NetworkTypeWiFi},
		{"cellular", Link{Up: true, Transports: classifier.TransportCellular}, classifier.LegacyTypeMobile, classifier.SubtypeCodeUnknown, classifier.NetworkTypeMobile},
		{"bluetooth", Link{Up: true, Transports: classifier.TransportBluetooth}, classifier.LegacyTypeBluetooth, -1, classifier.NetworkTypeNone},
		{"vpn", Link{Up: true, Transports: classifier.TransportVPN}, classifier.LegacyTypeVPN, -1, classifier.NetworkTypeNone},
		{"nothing", Link{Up: true}, classifier.LegacyTypeNone, -1, classifier.NetworkTypeNone},
		{"down wifi", Link{Up: false, Transports: classifier.TransportWiFi}, classifier.LegacyTypeWiFi, -1, classifier.NetworkTypeNone},
	}

	c := classifier.NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := LegacyInfoFor(&tt.link)
			if info.Type != tt.expected {
				t.Errorf("Expected type %d, got %d", tt.expected, info.Type)
			}
			if info.Subtype != tt.subtype {
				t.Errorf("Expected subtype %d, got %d", tt.subtype, info.Subtype)
			}
			if got := c.ClassifyPrimary(classifier.LegacySnapshot(info)); got != tt.primary {
				t.Errorf("Expected %s, got %s", tt.primary, got)
			}
		})
	}
}

func TestUnderlyingLink(t *testing.T) {
	wg := Link{Name: "wg0", Up: true, Transports: classifier.TransportVPN}
	tun := Link{Name: "tun0", Up: true, Transports: classifier.TransportVPN}
	wlan := Link{Name: "wlan0", Up: true, Transports: classifier.TransportWiFi}
	ethDown := Link{Name: "eth0", Up: false, Transports: classifier.TransportEthernet}
	unknown := Link{Name: "dummy0", Up: true}

	tests := []struct {
		name     string
		active   *Link
		links    []Link
		expected string
	}{
		{"tunnel over wifi", &wg, []Link{ethDown, wg, wlan}, "wlan0"},
		{"tunnel over tunnel over wifi", &wg, []Link{tun, unknown, wg, wlan}, "wlan0"},
		{"tunnel alone", &wg, []Link{ethDown, wg}, "wg0"},
		{"wifi stays", &wlan, []Link{wg, wlan}, "wlan0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnderlyingLink(tt.active, tt.links)
			if got == nil || got.Name != tt.expected {
				t.Errorf("Expected %s, got %v", tt.expected, got)
			}
		})
	}

	if UnderlyingLink(nil, []Link{wlan}) != nil {
		t.Error("nil active link should stay nil")
	}
}
