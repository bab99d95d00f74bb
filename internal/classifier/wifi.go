package classifier

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"
)

// FormatWifiName returns the SSID with every double quote removed. Some
// platforms report the SSID wrapped in quotes. The result may be empty.
func FormatWifiName(info *WifiInfo) (string, bool) {
	if info == nil || info.SSID == nil {
		return "", false
	}
	return strings.ReplaceAll(*info.SSID, `"`, ""), true
}

// FormatWifiBSSID returns the access point BSSID as reported
func FormatWifiBSSID(info *WifiInfo) (string, bool) {
	if info == nil || info.BSSID == nil {
		return "", false
	}
	return *info.BSSID, true
}

// FormatWifiIPAddress decodes the packed adapter address into dotted-quad
// form. The first octet is the least significant byte, so 0x0100007F
// formats as 127.0.0.1. A zero address has no string form.
func FormatWifiIPAddress(info *WifiInfo) (string, bool) {
	if info == nil || info.IPAddress == 0 {
		return "", false
	}

	var octets [4]byte
	binary.LittleEndian.PutUint32(octets[:], info.IPAddress)

	var b strings.Builder
	for i, o := range octets {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(o)))
	}
	return b.String(), true
}

// PackIPv4 packs an IPv4 address the way adapters report it, first octet in
// the least significant byte. Anything other than an IPv4 address packs to 0.
func PackIPv4(ip net.IP) uint32 {
	v4 := ip.To4()
	if v4 == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(v4)
}
