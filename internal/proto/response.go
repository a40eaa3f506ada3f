package proto

import (
	"fmt"

	"github.com/fkoehler/ReactiveMongo/internal/buffer"
)

// ResponseInfo carries transport-level metadata attached to a decoded
// response. The decoder cannot know the channel; the caller injects it at
// the point the frame is associated with its source connection.
type ResponseInfo struct {
	ChannelID int32
}

// Response is one fully decoded inbound message. Documents is positioned at
// the start of zero or more length-prefixed document blobs; reading from it
// is destructive and single-consumer.
type Response struct {
	Header    MsgHeader
	Reply     ReplyOp
	Documents *buffer.Buffer
	Info      ResponseInfo
}

// DecodeResponse parses one complete frame, as produced by FrameDecoder,
// into a Response: the 16-byte header, then the operation-specific portion
// via parse, then everything left as the documents payload, untouched.
func DecodeResponse(frame []byte, info ResponseInfo, parse ReplyParser) (*Response, error) {
	b := buffer.New(frame)
	h, err := ReadHeader(b)
	if err != nil {
		return nil, fmt.Errorf("decode response header: %w", err)
	}
	reply, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("decode reply op %d: %w", h.OpCode, err)
	}
	return &Response{
		Header:    h,
		Reply:     reply,
		Documents: b,
		Info:      info,
	}, nil
}
