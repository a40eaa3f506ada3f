package proto

import "github.com/fkoehler/ReactiveMongo/internal/buffer"

// Reply flag bits.
const (
	ReplyFlagCursorNotFound int32 = 1 << 0
	ReplyFlagQueryFailure   int32 = 1 << 1
	ReplyFlagAwaitCapable   int32 = 1 << 3
)

// ReplyOp is the operation-specific portion of a response frame, parsed by
// a ReplyParser before the documents payload.
type ReplyOp interface {
	// InError reports whether the remote flagged the operation as failed.
	InError() bool
}

// ReplyParser consumes the operation-specific bytes of a response frame,
// leaving the documents payload unread in b.
type ReplyParser func(b *buffer.Buffer) (ReplyOp, error)

// Reply is the standard OP_REPLY operation: 20 bytes of flags and cursor
// metadata ahead of the returned documents.
type Reply struct {
	Flags          int32
	CursorID       int64
	StartingFrom   int32
	NumberReturned int32
}

func (r Reply) InError() bool {
	return r.Flags&ReplyFlagQueryFailure != 0
}

func (r Reply) CursorNotFound() bool {
	return r.Flags&ReplyFlagCursorNotFound != 0
}

// ParseReply is the ReplyParser for OP_REPLY frames.
func ParseReply(b *buffer.Buffer) (ReplyOp, error) {
	var r Reply
	var err error
	if r.Flags, err = b.ReadInt32(); err != nil {
		return nil, err
	}
	if r.CursorID, err = b.ReadInt64(); err != nil {
		return nil, err
	}
	if r.StartingFrom, err = b.ReadInt32(); err != nil {
		return nil, err
	}
	if r.NumberReturned, err = b.ReadInt32(); err != nil {
		return nil, err
	}
	return r, nil
}
