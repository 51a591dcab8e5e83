package utils

// ByteReader is a bounds-checked cursor over a byte slice. Every read
// reports whether enough bytes remained; a failed read does not advance,
// so parsers over untrusted input can never read past the supplied length.
type ByteReader struct {
	data []byte
	pos  int
}

// NewByteReader returns a reader positioned at the start of data. The
// reader never copies or mutates data.
func NewByteReader(data []byte) ByteReader {
	return ByteReader{data: data}
}

// ReadUint8 reads the next byte.
func (r *ByteReader) ReadUint8() (uint8, bool) {
	if r.pos+1 > len(r.data) {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

// ReadUint16 reads the next two bytes big-endian.
func (r *ByteReader) ReadUint16() (uint16, bool) {
	if r.pos+2 > len(r.data) {
		return 0, false
	}
	v := Get2Bytes(r.data, r.pos)
	r.pos += 2
	return v, true
}

// Skip advances the cursor n bytes.
func (r *ByteReader) Skip(n int) bool {
	if n < 0 || r.pos+n > len(r.data) {
		return false
	}
	r.pos += n
	return true
}

// Remaining returns the number of unread bytes.
func (r *ByteReader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the current cursor offset.
func (r *ByteReader) Pos() int {
	return r.pos
}

func Get2Bytes(data []byte, i int) uint16 {
	return uint16(data[i+1]) | (uint16(data[i]) << 8)
}

func Get3Bytes(data []byte, i int) uint32 {
	return (uint32(data[i+2])) | (uint32(data[i+1]) << 8) | (uint32(data[i]) << 16)
}
