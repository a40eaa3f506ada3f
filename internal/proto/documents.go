package proto

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/fkoehler/ReactiveMongo/internal/buffer"
)

// ErrTruncatedDocument is returned when a document's declared length
// exceeds the bytes remaining in the buffer.
var ErrTruncatedDocument = errors.New("proto: truncated document")

// DocumentReader decodes one raw length-prefixed document blob into a T.
// It is supplied by the document-format collaborator.
type DocumentReader[T any] interface {
	Read(p []byte) (T, error)
}

// DocumentIterator lazily extracts documents from a response's documents
// buffer. Iteration is destructive and not restartable; the iterator must
// exclusively own the buffer it was built from, and exactly one consumer
// may advance it.
type DocumentIterator[T any] struct {
	buf    *buffer.Buffer
	reader DocumentReader[T]
}

// NewDocumentIterator builds an iterator over buf using reader.
func NewDocumentIterator[T any](buf *buffer.Buffer, reader DocumentReader[T]) *DocumentIterator[T] {
	return &DocumentIterator[T]{buf: buf, reader: reader}
}

// HasNext reports whether any readable bytes remain.
func (it *DocumentIterator[T]) HasNext() bool {
	return it.buf.Len() > 0
}

// Next consumes the next document. The 4-byte little-endian prefix counts
// the entire document including itself.
func (it *DocumentIterator[T]) Next() (T, error) {
	var zero T
	length, err := it.buf.PeekInt32()
	if err != nil {
		return zero, ErrTruncatedDocument
	}
	p, err := it.buf.ReadBytes(int(length))
	if err != nil {
		return zero, ErrTruncatedDocument
	}
	return it.reader.Read(p)
}

// RawReader is the default DocumentReader, yielding bson.Raw documents.
type RawReader struct{}

func (RawReader) Read(p []byte) (bson.Raw, error) {
	return bson.Raw(p), nil
}
