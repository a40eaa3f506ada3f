package session

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/fkoehler/ReactiveMongo/internal/buffer"
	"github.com/fkoehler/ReactiveMongo/internal/nodeset"
	"github.com/fkoehler/ReactiveMongo/internal/proto"
)

func newTestConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	c := New(client, 1, zerolog.Nop())
	t.Cleanup(func() {
		c.Close()
		server.Close()
	})
	return c, server
}

// serveReply answers every inbound request with an OP_REPLY carrying doc.
func serveReply(t *testing.T, server net.Conn, doc bson.D) {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		var dec proto.FrameDecoder
		buf := make([]byte, 4096)
		for {
			n, err := server.Read(buf)
			if err != nil {
				return
			}
			dec.Feed(buf[:n])
			for {
				frame, ok := dec.Next()
				if !ok {
					break
				}
				h, err := proto.ReadHeader(buffer.New(frame))
				if err != nil {
					return
				}
				out := buffer.New(nil)
				reply := proto.MsgHeader{
					MessageLength: int32(proto.HeaderSize + 20 + len(raw)),
					RequestID:     1000,
					ResponseTo:    h.RequestID,
					OpCode:        proto.OpReply,
				}
				reply.WriteTo(out)
				out.WriteInt32(0)
				out.WriteInt64(0)
				out.WriteInt32(0)
				out.WriteInt32(1)
				out.WriteBytes(raw)
				if _, err := server.Write(out.Bytes()); err != nil {
					return
				}
			}
		}
	}()
}

func TestConn_SendReceive(t *testing.T) {
	c, server := newTestConn(t)
	serveReply(t, server, bson.D{{Key: "ok", Value: float64(1)}})
	go c.Serve()

	m := proto.RequestMaker{
		Op:        proto.Query{FullCollectionName: "db.$cmd", NumberToReturn: 1},
		Documents: mustMarshal(t, bson.D{{Key: "ping", Value: int32(1)}}),
	}

	id, err := c.Send(m)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id <= 0 {
		t.Fatalf("request id %d must be strictly positive", id)
	}

	select {
	case resp := <-c.Responses():
		if resp.Header.ResponseTo != id {
			t.Fatalf("responseTo %d, want %d", resp.Header.ResponseTo, id)
		}
		if resp.Info.ChannelID != 1 {
			t.Fatalf("channelID %d", resp.Info.ChannelID)
		}
		if err := c.CheckError(resp); err != nil {
			t.Fatalf("CheckError: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for response")
	}
}

func TestConn_RequestIDsIncrease(t *testing.T) {
	c, server := newTestConn(t)
	serveReply(t, server, bson.D{{Key: "ok", Value: float64(1)}})
	go c.Serve()

	m := proto.RequestMaker{
		Op:        proto.Query{FullCollectionName: "db.$cmd", NumberToReturn: 1},
		Documents: mustMarshal(t, bson.D{{Key: "ping", Value: int32(1)}}),
	}
	first, err := c.Send(m)
	if err != nil {
		t.Fatal(err)
	}
	<-c.Responses()
	second, err := c.Send(m)
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Fatalf("ids not increasing: %d then %d", first, second)
	}
}

func TestConn_SendNotUsable(t *testing.T) {
	c, _ := newTestConn(t)
	c.SetState(nodeset.NotConnected{})
	if _, err := c.Send(proto.RequestMaker{Op: proto.Query{FullCollectionName: "a.b"}}); !errors.Is(err, ErrChannelNotUsable) {
		t.Fatalf("expected ErrChannelNotUsable, got %v", err)
	}
}

func TestConn_SendWhileAuthenticating(t *testing.T) {
	c, server := newTestConn(t)
	serveReply(t, server, bson.D{{Key: "ok", Value: float64(1)}})
	go c.Serve()

	c.SetState(nodeset.Authenticating{DB: "admin", User: "u", Password: "p"})
	if _, err := c.Send(proto.RequestMaker{
		Op:        proto.Query{FullCollectionName: "db.$cmd", NumberToReturn: 1},
		Documents: mustMarshal(t, bson.D{{Key: "ping", Value: int32(1)}}),
	}); err != nil {
		t.Fatalf("authenticating channel must accept sends: %v", err)
	}
}

func TestConn_ServeClosesResponses(t *testing.T) {
	c, server := newTestConn(t)
	done := make(chan struct{})
	go func() {
		c.Serve()
		close(done)
	}()
	server.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return on transport close")
	}
	if _, open := <-c.Responses(); open {
		t.Fatal("responses channel left open")
	}
	if c.State().Usable() {
		t.Fatal("closed channel still usable")
	}
}

func mustMarshal(t *testing.T, doc bson.D) []byte {
	t.Helper()
	p, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
