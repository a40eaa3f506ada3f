package proto

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// QueryError is the structured error document the server attaches to a
// failed query reply.
type QueryError struct {
	Err    string `bson:"err"`
	ErrMsg string `bson:"errmsg"`
	Code   int32  `bson:"code"`
}

func (e *QueryError) Error() string {
	msg := e.Err
	if msg == "" {
		msg = e.ErrMsg
	}
	if e.Code != 0 {
		return fmt.Sprintf("query error %d: %s", e.Code, msg)
	}
	return "query error: " + msg
}

// ExtractError inspects a response whose reply is flagged as failed and
// tries to decode the first document as a QueryError.
//
// The second return value reports whether the error flag was accounted
// for: it is false only when the reply is in error but the documents
// buffer holds no decodable error document. In that case no error is
// surfaced and the response passes as a success — longstanding wire
// behavior kept as-is; callers should log it.
//
// ExtractError reads from the response's documents buffer and therefore
// consumes the first document.
func ExtractError(resp *Response) (error, bool) {
	if !resp.Reply.InError() {
		return nil, true
	}
	it := NewDocumentIterator[bson.Raw](resp.Documents, RawReader{})
	if !it.HasNext() {
		return nil, false
	}
	doc, err := it.Next()
	if err != nil {
		return nil, false
	}
	var qerr QueryError
	if err := bson.Unmarshal(doc, &qerr); err != nil {
		return nil, false
	}
	return &qerr, true
}
