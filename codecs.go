package rtp

import (
	"github.com/routemedia/rtp/codecs"
)

type codecKey struct {
	kind    Kind
	subType string
}

// codecTable is the fixed set of codecs this router can reason about,
// keyed by kind and normalized subtype. Built once, never mutated, so
// concurrent lookups from the forwarding paths need no synchronization.
var codecTable = map[codecKey]codecs.KeyFrameFunc{
	{KindVideo, "vp8"}:  codecs.IsVP8KeyFrame,
	{KindVideo, "vp9"}:  codecs.IsVP9KeyFrame,
	{KindVideo, "h264"}: codecs.IsH264KeyFrame,
	{KindAudio, "opus"}: codecs.IsOpusKeyFrame,
}

// IsKnown reports whether mt is a codec this package can reason about.
// Codecs outside the table are still forwardable, just without
// key-frame-aware handling.
func IsKnown(mt MimeType) bool {
	_, ok := codecTable[codecKey{mt.Kind(), mt.Normalized()}]

	return ok
}

// IsKeyFrame reports whether payload, encoded as mt, carries a key frame.
// An unknown codec, an empty payload or a payload too short to classify
// all answer false: the caller must never switch streams on an unproven
// key frame.
func IsKeyFrame(mt MimeType, payload []byte) bool {
	if len(payload) == 0 {
		return false
	}

	parser, ok := codecTable[codecKey{mt.Kind(), mt.Normalized()}]
	if !ok {
		return false
	}

	return parser(payload)
}
