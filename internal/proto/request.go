package proto

import (
	"fmt"

	"github.com/fkoehler/ReactiveMongo/internal/buffer"
)

// Request is one outbound wire message: an operation plus its raw documents
// payload. RequestID must be strictly positive for any request expecting a
// correlated reply; 0 means no correlation is expected. ChannelHint, when
// non-zero, asks the sender to use a specific channel (the reply to a
// getMore must travel on the channel that holds the cursor).
type Request struct {
	RequestID   int32
	ResponseTo  int32
	Op          WritableOp
	Documents   []byte
	ChannelHint int32
}

// Size is the total wire length of the encoded request, computed
// arithmetically from its parts. Encode must produce exactly this many
// bytes.
func (r *Request) Size() int32 {
	return HeaderSize + r.Op.Size() + int32(len(r.Documents))
}

// Header derives the message header; it is never stored independently.
func (r *Request) Header() MsgHeader {
	return MsgHeader{
		MessageLength: r.Size(),
		RequestID:     r.RequestID,
		ResponseTo:    r.ResponseTo,
		OpCode:        r.Op.OpCode(),
	}
}

// Encode serializes the request: header, operation, then the documents
// payload verbatim. Encoding is pure and safe to call concurrently for
// distinct requests.
//
// A mismatch between the produced byte count and Size is an internal
// inconsistency between size accounting and the writers, never a transient
// condition, so it panics rather than returning an error.
func (r *Request) Encode() ([]byte, error) {
	b := buffer.New(make([]byte, 0, r.Size()))
	r.Header().WriteTo(b)
	if err := r.Op.WriteTo(b); err != nil {
		return nil, fmt.Errorf("write op %d: %w", r.Op.OpCode(), err)
	}
	b.WriteBytes(r.Documents)
	if got := int32(b.Len()); got != r.Size() {
		panic(fmt.Sprintf("proto: encoded %d bytes for request %d, size accounting says %d", got, r.RequestID, r.Size()))
	}
	return b.Bytes(), nil
}

// RequestMaker is a Request template lacking a RequestID. ID assignment is
// a connection-level sequencing concern decided at send time, so it is kept
// apart from message construction.
type RequestMaker struct {
	Op          WritableOp
	Documents   []byte
	ChannelHint int32
}

// Make binds a request ID to the template.
func (m RequestMaker) Make(id int32) *Request {
	return &Request{
		RequestID:   id,
		Op:          m.Op,
		Documents:   m.Documents,
		ChannelHint: m.ChannelHint,
	}
}
