package codecs

// IsOpusKeyFrame always reports false: Opus is a supported codec but audio
// frames have no intra/inter distinction, so no payload can be promoted to
// a key frame.
func IsOpusKeyFrame(payload []byte) bool {
	return false
}
