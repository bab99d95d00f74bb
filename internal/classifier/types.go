// Package classifier maps connectivity facts reported by the operating system
// to a small set of labels: the primary network type, the mobile subtype and
// the formatted wifi adapter fields.
//
// Every function in this package is pure. Unrecognised codes and missing data
// degrade to NetworkTypeNone or to an absent value, never to an error.
package classifier

// NetworkType is the primary classification of the active network
type NetworkType string

const (
	NetworkTypeWiFi   NetworkType = "wifi"
	NetworkTypeMobile NetworkType = "mobile"
	NetworkTypeNone   NetworkType = "none"
)

// String returns the label
func (nt NetworkType) String() string {
	return string(nt)
}

// Valid reports whether nt is one of the three labels
func (nt NetworkType) Valid() bool {
	switch nt {
	case NetworkTypeWiFi, NetworkTypeMobile, NetworkTypeNone:
		return true
	}
	return false
}

// Subtype labels the mobile radio technology
type Subtype string

const (
	SubtypeUnknown Subtype = "unknown" // connected, speed cannot be told
	Subtype1xRTT   Subtype = "1xRTT"
	SubtypeCDMA    Subtype = "cdma"
	SubtypeEDGE    Subtype = "edge"
	SubtypeEVDO0   Subtype = "evdo_0"
	SubtypeEVDOA   Subtype = "evdo_a"
	SubtypeEVDOB   Subtype = "evdo_b"
	SubtypeGPRS    Subtype = "gprs"
	SubtypeHSDPA   Subtype = "hsdpa"
	SubtypeHSPA    Subtype = "hspa"
	SubtypeHSPAP   Subtype = "hspap"
	SubtypeHSUPA   Subtype = "hsupa"
	SubtypeUMTS    Subtype = "umts"
	SubtypeEHRPD   Subtype = "ehrpd"
	SubtypeIDEN    Subtype = "iden"
	SubtypeLTE     Subtype = "lte"
)

// String returns the label
func (s Subtype) String() string {
	return string(s)
}

// Generation groups mobile subtypes by broadband generation
type Generation string

const (
	GenerationUnknown Generation = "unknown"
	Generation2G      Generation = "2g"
	Generation3G      Generation = "3g"
	Generation4G      Generation = "4g"
)

// Generation returns the broadband generation of the subtype
func (s Subtype) Generation() Generation {
	switch s {
	case SubtypeGPRS, SubtypeEDGE, SubtypeCDMA, Subtype1xRTT, SubtypeIDEN:
		return Generation2G
	case SubtypeUMTS, SubtypeEVDO0, SubtypeEVDOA, SubtypeEVDOB,
		SubtypeHSDPA, SubtypeHSUPA, SubtypeHSPA, SubtypeHSPAP, SubtypeEHRPD:
		return Generation3G
	case SubtypeLTE:
		return Generation4G
	default:
		return GenerationUnknown
	}
}

// Transport is a bit set of transport capabilities of the active network
type Transport uint8

const (
	TransportCellular Transport = 1 << iota
	TransportWiFi
	TransportBluetooth
	TransportEthernet
	TransportVPN
)

// Has reports whether every bit of other is set in t
func (t Transport) Has(other Transport) bool {
	return other != 0 && t&other == other
}

// Capabilities describes the active network in the modern query shape
type Capabilities struct {
	Transports Transport
}

// HasTransport reports whether the capabilities include the transport
func (c *Capabilities) HasTransport(t Transport) bool {
	return c != nil && c.Transports.Has(t)
}

// LegacyType is the platform's network type code
type LegacyType int

const (
	LegacyTypeNone        LegacyType = -1
	LegacyTypeMobile      LegacyType = 0
	LegacyTypeWiFi        LegacyType = 1
	LegacyTypeMobileMMS   LegacyType = 2
	LegacyTypeMobileSUPL  LegacyType = 3
	LegacyTypeMobileDUN   LegacyType = 4
	LegacyTypeMobileHIPRI LegacyType = 5
	LegacyTypeWiMAX       LegacyType = 6
	LegacyTypeBluetooth   LegacyType = 7
	LegacyTypeDummy       LegacyType = 8
	LegacyTypeEthernet    LegacyType = 9
	LegacyTypeVPN         LegacyType = 17
)

// SubtypeCode is the platform's telephony network type code
type SubtypeCode int

const (
	SubtypeCodeUnknown SubtypeCode = 0
	SubtypeCodeGPRS    SubtypeCode = 1
	SubtypeCodeEDGE    SubtypeCode = 2
	SubtypeCodeUMTS    SubtypeCode = 3
	SubtypeCodeCDMA    SubtypeCode = 4
	SubtypeCodeEVDO0   SubtypeCode = 5
	SubtypeCodeEVDOA   SubtypeCode = 6
	SubtypeCode1xRTT   SubtypeCode = 7
	SubtypeCodeHSDPA   SubtypeCode = 8
	SubtypeCodeHSUPA   SubtypeCode = 9
	SubtypeCodeHSPA    SubtypeCode = 10
	SubtypeCodeIDEN    SubtypeCode = 11
	SubtypeCodeEVDOB   SubtypeCode = 12
	SubtypeCodeLTE     SubtypeCode = 13
	SubtypeCodeEHRPD   SubtypeCode = 14
	SubtypeCodeHSPAP   SubtypeCode = 15
)

// LegacyInfo describes the active network in the legacy query shape
type LegacyInfo struct {
	Connected bool
	Type      LegacyType
	Subtype   SubtypeCode
}

// Shape discriminates the two snapshot shapes
type Shape int

const (
	ShapeModern Shape = iota
	ShapeLegacy
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case ShapeModern:
		return "modern"
	case ShapeLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Snapshot holds the connectivity facts of one query.
//
// In the modern shape Capabilities is consulted first; Legacy is the record the
// classification falls back to when the capabilities carry no recognised
// transport. In the legacy shape only Legacy is used. A nil Capabilities means
// the capability query returned nothing, a nil Legacy means the connection
// state is unknown.
type Snapshot struct {
	Shape        Shape
	Capabilities *Capabilities
	Legacy       *LegacyInfo
}

// ModernSnapshot builds a snapshot in the modern shape
func ModernSnapshot(caps *Capabilities, fallback *LegacyInfo) Snapshot {
	return Snapshot{Shape: ShapeModern, Capabilities: caps, Legacy: fallback}
}

// LegacySnapshot builds a snapshot in the legacy shape
func LegacySnapshot(info *LegacyInfo) Snapshot {
	return Snapshot{Shape: ShapeLegacy, Legacy: info}
}

// WifiInfo is the raw wifi adapter record. SSID may be wrapped in quotes.
// IPAddress is an IPv4 address packed least-significant octet first, 0 when
// the adapter has no address.
type WifiInfo struct {
	SSID      *string
	BSSID     *string
	IPAddress uint32
}

// Result aggregates every classification output of one query. Absent values
// are nil.
type Result struct {
	Type      NetworkType `json:"type"`
	Subtype   *Subtype    `json:"subtype,omitempty"`
	WifiName  *string     `json:"wifi_name,omitempty"`
	WifiBSSID *string     `json:"wifi_bssid,omitempty"`
	WifiIP    *string     `json:"wifi_ip,omitempty"`
}
