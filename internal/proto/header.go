// Package proto implements the MongoDB wire protocol: the 16-byte message
// header, outbound request construction and encoding, incremental frame
// decoding of the inbound byte stream, response parsing and lazy iteration
// over reply documents.
package proto

import "github.com/fkoehler/ReactiveMongo/internal/buffer"

// HeaderSize is the fixed byte length of a MsgHeader on the wire.
const HeaderSize = 16

// MsgHeader is the fixed prefix of every wire message. MessageLength is the
// total frame length including these 16 bytes. ResponseTo in a reply equals
// the RequestID of the request it answers; both are 0 when no correlation
// is expected.
type MsgHeader struct {
	MessageLength int32
	RequestID     int32
	ResponseTo    int32
	OpCode        int32
}

// WriteTo appends the header's 16-byte little-endian encoding to b.
func (h MsgHeader) WriteTo(b *buffer.Buffer) {
	b.WriteInt32(h.MessageLength)
	b.WriteInt32(h.RequestID)
	b.WriteInt32(h.ResponseTo)
	b.WriteInt32(h.OpCode)
}

// ReadHeader consumes 16 bytes from b and decodes them as a MsgHeader. It
// performs no validation; an implausible MessageLength is returned as-is.
func ReadHeader(b *buffer.Buffer) (MsgHeader, error) {
	var h MsgHeader
	var err error
	if h.MessageLength, err = b.ReadInt32(); err != nil {
		return h, err
	}
	if h.RequestID, err = b.ReadInt32(); err != nil {
		return h, err
	}
	if h.ResponseTo, err = b.ReadInt32(); err != nil {
		return h, err
	}
	if h.OpCode, err = b.ReadInt32(); err != nil {
		return h, err
	}
	return h, nil
}
