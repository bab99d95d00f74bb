// +build property

package property

import (
	"net"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
)

// genTransports generates any combination of the five transport bits
func genTransports() gopter.Gen {
	return gen.UInt8Range(0, 31).Map(func(v uint8) classifier.Transport {
		return classifier.Transport(v)
	})
}

// genLegacyType generates known and unknown legacy type codes, including the null type
func genLegacyType() gopter.Gen {
	return gen.IntRange(-2, 20).Map(func(v int) classifier.LegacyType {
		return classifier.LegacyType(v)
	})
}

// genSubtypeCode generates known and unknown subtype codes
func genSubtypeCode() gopter.Gen {
	return gen.IntRange(-1, 20).Map(func(v int) classifier.SubtypeCode {
		return classifier.SubtypeCode(v)
	})
}

// genIP generates a valid IPv4 address
func genIP() gopter.Gen {
	return gen.SliceOfN(4, gen.UInt8()).Map(func(bytes []uint8) net.IP {
		return net.IPv4(bytes[0], bytes[1], bytes[2], bytes[3])
	})
}

// genSSID generates raw SSIDs, some of them wrapped in quotes
func genSSID() gopter.Gen {
	return gen.OneGenOf(
		gen.AlphaString(),
		gen.AlphaString().Map(func(s string) string { return `"` + s + `"` }),
		gen.OneConstOf(`""`, `"`, `a"b`),
	)
}
