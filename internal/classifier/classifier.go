package classifier

// Classifier classifies connectivity snapshots. It holds no state; the zero
// value is ready to use.
type Classifier struct{}

// NewClassifier creates a new connectivity classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ClassifyPrimary returns the primary network type for a snapshot.
//
// In the modern shape wifi and ethernet transports take priority over
// cellular. Capabilities that carry none of those transports fall through to
// the legacy record of the same snapshot.
func (c *Classifier) ClassifyPrimary(s Snapshot) NetworkType {
	switch s.Shape {
	case ShapeModern:
		if s.Capabilities == nil {
			return NetworkTypeNone
		}
		if s.Capabilities.HasTransport(TransportWiFi) || s.Capabilities.HasTransport(TransportEthernet) {
			return NetworkTypeWiFi
		}
		if s.Capabilities.HasTransport(TransportCellular) {
			return NetworkTypeMobile
		}
		return classifyLegacy(s.Legacy)
	case ShapeLegacy:
		return classifyLegacy(s.Legacy)
	default:
		return NetworkTypeNone
	}
}

func classifyLegacy(info *LegacyInfo) NetworkType {
	if info == nil || !info.Connected {
		return NetworkTypeNone
	}
	return LookupLegacyType(info.Type)
}

// ClassifySubtype returns the mobile subtype label of the snapshot's legacy
// record. The label is absent when the record is missing, disconnected, or
// carries a code without a label.
func (c *Classifier) ClassifySubtype(s Snapshot) (Subtype, bool) {
	if s.Legacy == nil || !s.Legacy.Connected {
		return "", false
	}
	return LookupSubtype(s.Legacy.Subtype)
}

// Classify runs every classification for one query
func (c *Classifier) Classify(s Snapshot, wifi *WifiInfo) *Result {
	result := &Result{
		Type: c.ClassifyPrimary(s),
	}

	if subtype, ok := c.ClassifySubtype(s); ok {
		result.Subtype = &subtype
	}
	if name, ok := FormatWifiName(wifi); ok {
		result.WifiName = &name
	}
	if bssid, ok := FormatWifiBSSID(wifi); ok {
		result.WifiBSSID = &bssid
	}
	if ip, ok := FormatWifiIPAddress(wifi); ok {
		result.WifiIP = &ip
	}

	return result
}
