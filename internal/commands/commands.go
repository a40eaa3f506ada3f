// Package commands builds administrative wire requests and decodes their
// replies: the "confirm last write" follow-up (getLastError) and the node
// status probe (isMaster).
package commands

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/fkoehler/ReactiveMongo/internal/nodeset"
	"github.com/fkoehler/ReactiveMongo/internal/proto"
)

// ErrNoDocument is returned when a command reply carries no document.
var ErrNoDocument = errors.New("commands: reply carries no document")

func commandMaker(db string, cmd bson.D) (proto.RequestMaker, error) {
	doc, err := bson.Marshal(cmd)
	if err != nil {
		return proto.RequestMaker{}, fmt.Errorf("marshal %s command: %w", db, err)
	}
	return proto.RequestMaker{
		Op: proto.Query{
			FullCollectionName: db + ".$cmd",
			NumberToReturn:     1,
		},
		Documents: doc,
	}, nil
}

// ConfirmLastWrite builds the getLastError follow-up sent on the same
// channel right after a write, asking the node to confirm it.
func ConfirmLastWrite(db string) (proto.RequestMaker, error) {
	return commandMaker(db, bson.D{{Key: "getlasterror", Value: int32(1)}})
}

// LastError is the reply document of a getLastError command.
type LastError struct {
	OK              float64     `bson:"ok"`
	Err             string      `bson:"err"`
	Code            int32       `bson:"code"`
	UpdatedN        int32       `bson:"n"`
	UpdatedExisting bool        `bson:"updatedExisting"`
	Upserted        interface{} `bson:"upserted"`
}

// InError reports whether the confirmed write failed.
func (le *LastError) InError() bool {
	return le.OK != 1 || le.Err != ""
}

// IsMaster builds the periodic node status probe against admin.$cmd.
func IsMaster() (proto.RequestMaker, error) {
	return commandMaker("admin", bson.D{{Key: "ismaster", Value: int32(1)}})
}

// IsMasterReply is the reply document of an isMaster command.
type IsMasterReply struct {
	OK                float64  `bson:"ok"`
	IsMaster          bool     `bson:"ismaster"`
	Secondary         bool     `bson:"secondary"`
	Hidden            bool     `bson:"hidden"`
	ArbiterOnly       bool     `bson:"arbiterOnly"`
	SetName           string   `bson:"setName"`
	Hosts             []string `bson:"hosts"`
	Primary           string   `bson:"primary"`
	Me                string   `bson:"me"`
	MaxBSONObjectSize int32    `bson:"maxBsonObjectSize"`
}

// NodeState classifies the node's self-reported role.
func (r *IsMasterReply) NodeState() nodeset.NodeState {
	switch {
	case r.IsMaster:
		return nodeset.StatePrimary
	case r.Secondary:
		return nodeset.StateSecondary
	case r.ArbiterOnly:
		return nodeset.StateArbiter
	}
	return nodeset.StateUnknown
}

// DecodeReply unmarshals the first document of a command response into out.
func DecodeReply(resp *proto.Response, out interface{}) error {
	it := proto.NewDocumentIterator[bson.Raw](resp.Documents, proto.RawReader{})
	if !it.HasNext() {
		return ErrNoDocument
	}
	doc, err := it.Next()
	if err != nil {
		return fmt.Errorf("read command reply document: %w", err)
	}
	if err := bson.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("unmarshal command reply: %w", err)
	}
	return nil
}
