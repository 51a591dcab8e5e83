// Package codecs holds the per-codec payload parsers used to classify RTP
// media payloads without decoding them. Each parser reads at most the
// codec-specific descriptor prefix plus a few header bytes, allocates
// nothing, and treats a truncated or malformed payload as "not a key frame".
package codecs

// KeyFrameFunc reports whether a raw RTP media payload carries a key
// (intra-coded) frame. Implementations must never read past the supplied
// slice and must return false when the payload is too short to decide.
type KeyFrameFunc func(payload []byte) bool
