package proto

import "github.com/fkoehler/ReactiveMongo/internal/buffer"

const (
	OpReply       int32 = 1
	OpUpdate      int32 = 2001
	OpInsert      int32 = 2002
	OpQuery       int32 = 2004
	OpGetMore     int32 = 2005
	OpDelete      int32 = 2006
	OpKillCursors int32 = 2007
)

// Query flag bits.
const (
	QueryFlagTailableCursor  int32 = 1 << 1
	QueryFlagSlaveOk         int32 = 1 << 2
	QueryFlagNoCursorTimeout int32 = 1 << 4
	QueryFlagAwaitData       int32 = 1 << 5
)

// WritableOp is the operation-specific portion of a request, written
// between the header and the documents payload. Size must equal exactly the
// number of bytes WriteTo appends.
type WritableOp interface {
	OpCode() int32
	Size() int32
	WriteTo(b *buffer.Buffer) error
}

// Query is the OP_QUERY operation. The query document (and optional
// projection) travel in the request's documents payload, not in the op.
type Query struct {
	Flags              int32
	FullCollectionName string
	NumberToSkip       int32
	NumberToReturn     int32
}

func (q Query) OpCode() int32 { return OpQuery }

func (q Query) Size() int32 {
	return 4 + int32(len(q.FullCollectionName)) + 1 + 4 + 4
}

func (q Query) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(q.Flags)
	b.WriteCString(q.FullCollectionName)
	b.WriteInt32(q.NumberToSkip)
	b.WriteInt32(q.NumberToReturn)
	return nil
}

// GetMore is the OP_GETMORE operation, continuing a server-side cursor.
type GetMore struct {
	FullCollectionName string
	NumberToReturn     int32
	CursorID           int64
}

func (g GetMore) OpCode() int32 { return OpGetMore }

func (g GetMore) Size() int32 {
	return 4 + int32(len(g.FullCollectionName)) + 1 + 4 + 8
}

func (g GetMore) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(0) // reserved
	b.WriteCString(g.FullCollectionName)
	b.WriteInt32(g.NumberToReturn)
	b.WriteInt64(g.CursorID)
	return nil
}

// Insert is the OP_INSERT operation; the documents to insert travel in the
// request's documents payload.
type Insert struct {
	Flags              int32
	FullCollectionName string
}

func (i Insert) OpCode() int32 { return OpInsert }

func (i Insert) Size() int32 {
	return 4 + int32(len(i.FullCollectionName)) + 1
}

func (i Insert) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(i.Flags)
	b.WriteCString(i.FullCollectionName)
	return nil
}

// Update is the OP_UPDATE operation; selector and update documents travel
// in the request's documents payload, in that order.
type Update struct {
	FullCollectionName string
	Flags              int32
}

func (u Update) OpCode() int32 { return OpUpdate }

func (u Update) Size() int32 {
	return 4 + int32(len(u.FullCollectionName)) + 1 + 4
}

func (u Update) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(0) // reserved
	b.WriteCString(u.FullCollectionName)
	b.WriteInt32(u.Flags)
	return nil
}

// Delete is the OP_DELETE operation; the selector document travels in the
// request's documents payload.
type Delete struct {
	FullCollectionName string
	Flags              int32
}

func (d Delete) OpCode() int32 { return OpDelete }

func (d Delete) Size() int32 {
	return 4 + int32(len(d.FullCollectionName)) + 1 + 4
}

func (d Delete) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(0) // reserved
	b.WriteCString(d.FullCollectionName)
	b.WriteInt32(d.Flags)
	return nil
}

// KillCursors is the OP_KILL_CURSORS operation.
type KillCursors struct {
	CursorIDs []int64
}

func (k KillCursors) OpCode() int32 { return OpKillCursors }

func (k KillCursors) Size() int32 {
	return 4 + 4 + 8*int32(len(k.CursorIDs))
}

func (k KillCursors) WriteTo(b *buffer.Buffer) error {
	b.WriteInt32(0) // reserved
	b.WriteInt32(int32(len(k.CursorIDs)))
	for _, id := range k.CursorIDs {
		b.WriteInt64(id)
	}
	return nil
}
