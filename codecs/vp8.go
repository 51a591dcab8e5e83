package codecs

import (
	"github.com/routemedia/rtp/utils"
)

// VP8 payload descriptor flags. The first payload byte carries the
// extension bit; with it clear the byte doubles as the first payload-header
// byte. With it set, an extended control byte follows whose flags announce
// the optional picture-ID, layer-index and temporal-index bytes that sit
// between it and the payload header.
const (
	vp8ExtendedBit = 0x80

	vp8ExtPictureID   = 0x40
	vp8ExtLayerIndex  = 0x20
	vp8ExtTemporalIdx = 0x10

	vp8TwoBytePictureIDBit = 0x80

	// First payload-header byte: bit 0 is the inverse key-frame flag
	// (0 = key frame, 1 = inter frame).
	vp8InterFrameBit = 0x01
)

// VP8PayloadDescriptor is the decoded descriptor prefix of a VP8 payload.
// It is computed fresh per call and never retained.
type VP8PayloadDescriptor struct {
	Extended    bool
	PictureID   bool
	LayerIndex  bool
	TemporalIdx bool

	// HeaderOffset is the offset of the first payload-header byte.
	HeaderOffset int

	KeyFrame bool
}

// ParseVP8 decodes the descriptor prefix of a VP8 payload. ok is false when
// the payload ends before a required field.
func ParseVP8(payload []byte) (VP8PayloadDescriptor, bool) {
	var pd VP8PayloadDescriptor

	r := utils.NewByteReader(payload)

	b, ok := r.ReadUint8()
	if !ok {
		return pd, false
	}

	hdr := b
	if b&vp8ExtendedBit != 0 {
		pd.Extended = true

		ext, ok := r.ReadUint8()
		if !ok {
			return pd, false
		}

		if ext&vp8ExtPictureID != 0 {
			pd.PictureID = true

			pid, ok := r.ReadUint8()
			if !ok {
				return pd, false
			}
			if pid&vp8TwoBytePictureIDBit != 0 {
				if !r.Skip(1) {
					return pd, false
				}
			}
		}
		if ext&vp8ExtLayerIndex != 0 {
			pd.LayerIndex = true
			if !r.Skip(1) {
				return pd, false
			}
		}
		if ext&vp8ExtTemporalIdx != 0 {
			pd.TemporalIdx = true
			if !r.Skip(1) {
				return pd, false
			}
		}

		hdr, ok = r.ReadUint8()
		if !ok {
			return pd, false
		}
		pd.HeaderOffset = r.Pos() - 1
	}

	pd.KeyFrame = hdr&vp8InterFrameBit == 0

	return pd, true
}

// IsVP8KeyFrame reports whether a VP8 payload carries a key frame.
func IsVP8KeyFrame(payload []byte) bool {
	pd, ok := ParseVP8(payload)

	return ok && pd.KeyFrame
}
