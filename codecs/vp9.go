package codecs

// VP9 uncompressed-header bits, all packed in the first payload byte:
// frame marker (two bits, always 0b10), profile (two bits), then the
// show-existing-frame and frame-type bits. For profile 3 a reserved bit
// shifts the latter two down one position.
const (
	vp9FrameMarker = 0x02

	vp9KeyFrameMask         = 0x0C
	vp9KeyFrameMaskProfile3 = 0x06
)

// IsVP9KeyFrame reports whether a VP9 payload carries a key frame. A single
// fixed-offset check: the frame marker must match and both the
// show-existing-frame and frame-type bits must be zero.
func IsVP9KeyFrame(payload []byte) bool {
	if len(payload) < 1 {
		return false
	}

	b := payload[0]
	if (b>>6)&0x03 != vp9FrameMarker {
		return false
	}

	profile := (b >> 4) & 0x03
	if profile == 3 {
		return b&vp9KeyFrameMaskProfile3 == 0
	}

	return b&vp9KeyFrameMask == 0
}
