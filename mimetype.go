package rtp

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind is the top-level media kind of a negotiated codec.
type Kind int

const (
	KindUnset Kind = iota
	KindAudio
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "unset"
	}
}

// MimeType identifies the codec a payload is encoded with, as negotiated
// out of band. It is an immutable value used as a lookup key; subtype
// comparison is case-insensitive. The normalized form is computed once at
// construction so per-packet lookups do not allocate.
type MimeType struct {
	kind       Kind
	subType    string
	normalized string
}

// NewMimeType builds a MimeType from a kind and a codec subtype such as
// "VP8" or "opus".
func NewMimeType(kind Kind, subType string) MimeType {
	return MimeType{kind: kind, subType: subType, normalized: strings.ToLower(subType)}
}

// ParseMimeType parses a "kind/subtype" string such as "video/VP8".
func ParseMimeType(s string) (MimeType, error) {
	slash := strings.IndexByte(s, '/')
	if slash <= 0 || slash == len(s)-1 {
		return MimeType{}, errors.Errorf("invalid mime type %q", s)
	}

	var kind Kind
	switch strings.ToLower(s[:slash]) {
	case "audio":
		kind = KindAudio
	case "video":
		kind = KindVideo
	default:
		return MimeType{}, errors.Errorf("unknown media kind in mime type %q", s)
	}

	return NewMimeType(kind, s[slash+1:]), nil
}

// Kind returns the media kind.
func (m MimeType) Kind() Kind {
	return m.kind
}

// SubType returns the codec subtype as supplied.
func (m MimeType) SubType() string {
	return m.subType
}

// Normalized returns the lower-cased subtype, the form codec lookups key
// on.
func (m MimeType) Normalized() string {
	return m.normalized
}

func (m MimeType) String() string {
	return m.kind.String() + "/" + m.subType
}
