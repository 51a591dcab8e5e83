package rtp

import (
	"testing"

	"github.com/mudutv/randutil"
)

func TestIsKnown(t *testing.T) {
	tests := []struct {
		mime     string
		expected bool
	}{
		{"video/VP8", true},
		{"video/vp8", true},
		{"video/VP9", true},
		{"video/H264", true},
		{"video/h264", true},
		{"audio/opus", true},
		{"audio/OPUS", true},
		{"video/AV1", false},
		{"video/H265", false},
		{"audio/PCMU", false},
		{"audio/G722", false},
		// Kind must match too, not just the subtype.
		{"audio/VP8", false},
		{"video/opus", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			mt, err := ParseMimeType(tt.mime)
			if err != nil {
				t.Fatalf("ParseMimeType(%q): %v", tt.mime, err)
			}
			if got := IsKnown(mt); got != tt.expected {
				t.Errorf("IsKnown(%q) = %v, want %v", tt.mime, got, tt.expected)
			}
		})
	}
}

func TestIsKeyFrame(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		payload  []byte
		expected bool
	}{
		{
			name:     "VP8 bare key frame",
			mime:     "video/VP8",
			payload:  []byte{0x10},
			expected: true,
		},
		{
			name:     "VP8 bare inter frame",
			mime:     "video/VP8",
			payload:  []byte{0x11},
			expected: false,
		},
		{
			name:     "VP8 extended descriptor skipped",
			mime:     "video/VP8",
			payload:  []byte{0x80, 0x81, 0x10},
			expected: true,
		},
		{
			name:     "VP9 key frame",
			mime:     "video/VP9",
			payload:  []byte{0x80, 0x49, 0x83},
			expected: true,
		},
		{
			name:     "H264 IDR",
			mime:     "video/H264",
			payload:  []byte{0x65, 0x88},
			expected: true,
		},
		{
			name:     "audio codec is known but never a key frame",
			mime:     "audio/opus",
			payload:  []byte{0xFC, 0xFF, 0xFE},
			expected: false,
		},
		{
			name:     "unknown codec",
			mime:     "video/AV1",
			payload:  []byte{0x0A, 0x0B, 0x0C},
			expected: false,
		},
		{
			name:     "case-insensitive subtype lookup",
			mime:     "video/vp8",
			payload:  []byte{0x10},
			expected: true,
		},
		{
			name:     "empty payload on a known codec",
			mime:     "video/VP8",
			payload:  []byte{},
			expected: false,
		},
		{
			name:     "nil payload on a known codec",
			mime:     "video/H264",
			payload:  nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := ParseMimeType(tt.mime)
			if err != nil {
				t.Fatalf("ParseMimeType(%q): %v", tt.mime, err)
			}
			if got := IsKeyFrame(mt, tt.payload); got != tt.expected {
				t.Errorf("IsKeyFrame(%q, %#v) = %v, want %v", tt.mime, tt.payload, got, tt.expected)
			}
		})
	}
}

func TestIsKeyFrameUnknownCodecAnyPayload(t *testing.T) {
	mt := NewMimeType(KindVideo, "AV1")
	if IsKnown(mt) {
		t.Fatal("AV1 must not be in the supported set")
	}

	gen := randutil.NewMathRandomGenerator()
	for i := 0; i < 200; i++ {
		payload := make([]byte, gen.Intn(64))
		for j := range payload {
			payload[j] = byte(gen.Intn(256))
		}
		if IsKeyFrame(mt, payload) {
			t.Fatalf("IsKeyFrame on unknown codec = true for payload %#v", payload)
		}
	}
}

func TestIsKeyFrameTruncationSafety(t *testing.T) {
	// Valid key-frame payloads whose strict prefixes all cut off a
	// required field.
	tests := []struct {
		name    string
		mime    string
		payload []byte
	}{
		{"VP8 extended", "video/VP8", []byte{0x80, 0x40, 0x80, 0x01, 0x10}},
		{"H264 aggregate", "video/H264", []byte{0x78, 0x00, 0x02, 0x41, 0xAA, 0x00, 0x03, 0x65, 0xBB, 0xCC}},
		{"H264 fragment", "video/H264", []byte{0x7C, 0x85}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := ParseMimeType(tt.mime)
			if err != nil {
				t.Fatal(err)
			}
			if !IsKeyFrame(mt, tt.payload) {
				t.Fatalf("full payload must be a key frame")
			}
			for k := 0; k < len(tt.payload); k++ {
				if IsKeyFrame(mt, tt.payload[:k]) {
					t.Errorf("%d-byte prefix classified as a key frame", k)
				}
			}
		})
	}
}

func TestIsKeyFrameDeterministic(t *testing.T) {
	gen := randutil.NewMathRandomGenerator()
	mimes := []MimeType{
		NewMimeType(KindVideo, "VP8"),
		NewMimeType(KindVideo, "VP9"),
		NewMimeType(KindVideo, "H264"),
		NewMimeType(KindAudio, "opus"),
		NewMimeType(KindVideo, "AV1"),
	}

	for i := 0; i < 500; i++ {
		payload := make([]byte, gen.Intn(32))
		for j := range payload {
			payload[j] = byte(gen.Intn(256))
		}
		mt := mimes[gen.Intn(len(mimes))]

		first := IsKeyFrame(mt, payload)
		for n := 0; n < 3; n++ {
			if got := IsKeyFrame(mt, payload); got != first {
				t.Fatalf("IsKeyFrame(%v, %#v) flapped: %v then %v", mt, payload, first, got)
			}
		}
	}
}

func BenchmarkIsKeyFrameVP8(b *testing.B) {
	mt := NewMimeType(KindVideo, "VP8")
	payload := []byte{0x80, 0x70, 0x7F, 0x01, 0x02, 0x20}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		IsKeyFrame(mt, payload)
	}
}
