package proto

import "encoding/binary"

// FrameDecoder slices an unbounded inbound byte stream into discrete
// length-prefixed frames. One instance serves exactly one connection's
// receive path; its partial-frame state is mutated in place across calls
// and must never be shared between readers.
type FrameDecoder struct {
	buf []byte
}

// Feed appends newly arrived bytes to the decoder's buffer. It never
// blocks and never discards anything.
func (d *FrameDecoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Buffered reports the number of bytes held that are not yet part of a
// completed frame.
func (d *FrameDecoder) Buffered() int {
	return len(d.buf)
}

// Next returns the next complete frame, or (nil, false) when more input is
// needed. A frame is complete when the 4-byte little-endian length at the
// front of the buffer (which counts itself) is positive and no larger than
// the buffered byte count; Next then consumes exactly that many bytes and
// leaves the rest buffered for the following frame.
//
// A corrupt length that stays above the buffered count keeps yielding
// (nil, false) forever; the decoder waits rather than erroring.
func (d *FrameDecoder) Next() ([]byte, bool) {
	if len(d.buf) < 4 {
		return nil, false
	}
	length := int32(binary.LittleEndian.Uint32(d.buf))
	if length <= 0 || int(length) > len(d.buf) {
		return nil, false
	}
	frame := d.buf[:length:length]
	d.buf = d.buf[length:]
	return frame, true
}
