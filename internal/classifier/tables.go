package classifier

import "sort"

// legacyTypeLabels maps legacy network type codes to primary labels.
// Codes missing from the table classify as NetworkTypeNone.
var legacyTypeLabels = map[LegacyType]NetworkType{
	LegacyTypeEthernet: NetworkTypeWiFi,
	LegacyTypeWiFi:     NetworkTypeWiFi,
	LegacyTypeWiMAX:    NetworkTypeWiFi,

	LegacyTypeMobile:      NetworkTypeMobile,
	LegacyTypeMobileDUN:   NetworkTypeMobile,
	LegacyTypeMobileHIPRI: NetworkTypeMobile,
}

// subtypeLabels maps telephony network type codes to subtype labels.
// Codes missing from the table have no subtype.
var subtypeLabels = map[SubtypeCode]Subtype{
	SubtypeCode1xRTT:   Subtype1xRTT, // ~ 50-100 kbps
	SubtypeCodeCDMA:    SubtypeCDMA,  // ~ 14-64 kbps
	SubtypeCodeEDGE:    SubtypeEDGE,  // ~ 50-100 kbps
	SubtypeCodeEVDO0:   SubtypeEVDO0, // ~ 400-1000 kbps
	SubtypeCodeEVDOA:   SubtypeEVDOA, // ~ 600-1400 kbps
	SubtypeCodeGPRS:    SubtypeGPRS,  // ~ 100 kbps
	SubtypeCodeHSDPA:   SubtypeHSDPA, // ~ 2-14 Mbps
	SubtypeCodeHSPA:    SubtypeHSPA,  // ~ 700-1700 kbps
	SubtypeCodeHSUPA:   SubtypeHSUPA, // ~ 1-23 Mbps
	SubtypeCodeUMTS:    SubtypeUMTS,  // ~ 400-7000 kbps
	SubtypeCodeEHRPD:   SubtypeEHRPD, // ~ 1-2 Mbps
	SubtypeCodeEVDOB:   SubtypeEVDOB, // ~ 5 Mbps
	SubtypeCodeHSPAP:   SubtypeHSPAP, // ~ 10-20 Mbps
	SubtypeCodeIDEN:    SubtypeIDEN,  // ~ 25 kbps
	SubtypeCodeLTE:     SubtypeLTE,   // ~ 10+ Mbps
	SubtypeCodeUnknown: SubtypeUnknown,
}

// SubtypeCodes returns every subtype code with a label, in ascending order
func SubtypeCodes() []SubtypeCode {
	codes := make([]SubtypeCode, 0, len(subtypeLabels))
	for code := range subtypeLabels {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// LookupLegacyType returns the primary label for a legacy type code
func LookupLegacyType(t LegacyType) NetworkType {
	if label, ok := legacyTypeLabels[t]; ok {
		return label
	}
	return NetworkTypeNone
}

// LookupSubtype returns the subtype label for a telephony code
func LookupSubtype(code SubtypeCode) (Subtype, bool) {
	label, ok := subtypeLabels[code]
	return label, ok
}
