package codecs

import (
	"github.com/routemedia/rtp/utils"
)

// H264 NAL unit types (RFC 6184).
const (
	naluTypeIDR = 5

	naluTypeSTAPA = 24
	naluTypeFUA   = 28
	naluTypeFUB   = 29

	naluTypeMask = 0x1F

	fuStartBit = 0x80
)

// IsH264KeyFrame reports whether an H264 payload carries (part of) a key
// frame. The payload holds one or more NAL units depending on the
// packetization mode; the packet is a key frame when any contained unit is
// an IDR slice.
func IsH264KeyFrame(payload []byte) bool {
	r := utils.NewByteReader(payload)

	indicator, ok := r.ReadUint8()
	if !ok {
		return false
	}

	naluType := indicator & naluTypeMask
	switch {
	case naluType >= 1 && naluType <= 23:
		// Single NAL unit packet.
		return naluType == naluTypeIDR

	case naluType == naluTypeSTAPA:
		// Aggregation packet: walk the 16-bit-length-prefixed units. A
		// unit whose declared length overruns the payload makes the whole
		// packet undecidable.
		for r.Remaining() > 0 {
			size, ok := r.ReadUint16()
			if !ok || size == 0 || r.Remaining() < int(size) {
				return false
			}

			unitHeader, _ := r.ReadUint8()
			if unitHeader&naluTypeMask == naluTypeIDR {
				return true
			}

			if !r.Skip(int(size) - 1) {
				return false
			}
		}
		return false

	case naluType == naluTypeFUA || naluType == naluTypeFUB:
		// Fragmentation unit: the FU header follows the indicator. Only
		// the fragment carrying the start bit announces the unit type.
		fuHeader, ok := r.ReadUint8()
		if !ok {
			return false
		}
		return fuHeader&fuStartBit != 0 && fuHeader&naluTypeMask == naluTypeIDR

	default:
		return false
	}
}
