// Package buffer provides the byte-cursor primitives the wire codec is
// built on: little-endian fixed-width integers, C strings, length-prefixed
// strings and raw byte ranges over a single growable buffer with an
// independent read position.
package buffer

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrInsufficientData is returned by every read when fewer bytes remain
	// than the read requires. It is a normal incremental-decoding signal,
	// not a protocol error; callers retry once more bytes are available.
	ErrInsufficientData = errors.New("buffer: insufficient data")

	// ErrMalformedString is returned by ReadCString when the buffer is
	// exhausted before a terminating zero byte appears.
	ErrMalformedString = errors.New("buffer: malformed cstring")
)

// Buffer is a byte sequence with an append-only write cursor and a
// sequential read cursor. Writes always go to the end; reads consume from
// the current read position. Not safe for concurrent use.
type Buffer struct {
	data []byte
	off  int
}

// New returns a Buffer whose unread portion is p. The buffer takes
// ownership of p.
func New(p []byte) *Buffer {
	return &Buffer{data: p}
}

// Len reports the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.off
}

// Bytes returns the unread portion of the buffer. The slice aliases the
// buffer's storage and is only valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data[b.off:]
}

// WriteInt32 appends v as 4 little-endian bytes.
func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(v))
}

// WriteInt64 appends v as 8 little-endian bytes.
func (b *Buffer) WriteInt64(v int64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, uint64(v))
}

// WriteBytes appends p verbatim.
func (b *Buffer) WriteBytes(p []byte) {
	b.data = append(b.data, p...)
}

// WriteCString appends the UTF-8 bytes of s followed by a single zero byte.
func (b *Buffer) WriteCString(s string) {
	b.data = append(b.data, s...)
	b.data = append(b.data, 0)
}

// WriteLenString appends int32(len(s)+1), the UTF-8 bytes of s, and a
// trailing zero byte. The +1 accounts for that trailing zero.
func (b *Buffer) WriteLenString(s string) {
	b.WriteInt32(int32(len(s) + 1))
	b.WriteCString(s)
}

// ReadInt32 consumes 4 bytes and decodes them as a little-endian int32.
func (b *Buffer) ReadInt32() (int32, error) {
	if b.Len() < 4 {
		return 0, ErrInsufficientData
	}
	v := int32(binary.LittleEndian.Uint32(b.data[b.off:]))
	b.off += 4
	return v, nil
}

// ReadInt64 consumes 8 bytes and decodes them as a little-endian int64.
func (b *Buffer) ReadInt64() (int64, error) {
	if b.Len() < 8 {
		return 0, ErrInsufficientData
	}
	v := int64(binary.LittleEndian.Uint64(b.data[b.off:]))
	b.off += 8
	return v, nil
}

// PeekInt32 decodes a little-endian int32 at the read position without
// consuming it.
func (b *Buffer) PeekInt32() (int32, error) {
	if b.Len() < 4 {
		return 0, ErrInsufficientData
	}
	return int32(binary.LittleEndian.Uint32(b.data[b.off:])), nil
}

// ReadCString consumes bytes up to and including the next zero byte and
// returns everything before the zero.
func (b *Buffer) ReadCString() (string, error) {
	for i := b.off; i < len(b.data); i++ {
		if b.data[i] == 0 {
			s := string(b.data[b.off:i])
			b.off = i + 1
			return s, nil
		}
	}
	return "", ErrMalformedString
}

// ReadLenString consumes an int32 length n, then n-1 payload bytes, then
// the trailing zero byte.
func (b *Buffer) ReadLenString() (string, error) {
	n, err := b.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 1 || b.Len() < int(n) {
		return "", ErrInsufficientData
	}
	s := string(b.data[b.off : b.off+int(n)-1])
	b.off += int(n)
	return s, nil
}

// ReadBytes consumes exactly n bytes. The returned slice is a copy.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.Len() < n {
		return nil, ErrInsufficientData
	}
	p := make([]byte, n)
	copy(p, b.data[b.off:])
	b.off += n
	return p, nil
}
