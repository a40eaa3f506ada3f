// Package session ties the wire codec to a transport connection: it
// assigns request IDs at send time, feeds inbound bytes through a frame
// decoder, and delivers decoded responses to a single consumer in arrival
// order.
package session

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/fkoehler/ReactiveMongo/internal/nodeset"
	"github.com/fkoehler/ReactiveMongo/internal/proto"
)

// ErrChannelNotUsable is returned by Send when the channel is not in a
// usable state (neither Ready nor Authenticating).
var ErrChannelNotUsable = errors.New("session: channel not usable")

// Conn owns one transport channel. Its frame decoder and response channel
// are exclusively owned by the Serve loop and its single consumer;
// distinct Conns share no mutable state.
type Conn struct {
	nc        net.Conn
	channelID int32
	log       zerolog.Logger

	reqID     atomic.Int32
	responses chan *proto.Response

	mu    sync.Mutex
	state nodeset.ChannelState

	closeOnce sync.Once
}

// New wraps an established transport connection. The channel starts Ready;
// connection management moves it through the other states.
func New(nc net.Conn, channelID int32, log zerolog.Logger) *Conn {
	return &Conn{
		nc:        nc,
		channelID: channelID,
		log:       log.With().Int32("channel", channelID).Logger(),
		responses: make(chan *proto.Response, 16),
		state:     nodeset.Ready{},
	}
}

// ChannelID identifies this channel in ResponseInfo.
func (c *Conn) ChannelID() int32 { return c.channelID }

// State returns the channel's current usability label.
func (c *Conn) State() nodeset.ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState relabels the channel. Transitions are owned by connection
// management; this only records them.
func (c *Conn) SetState(s nodeset.ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Send assigns the next request ID to the template, encodes it and writes
// it to the transport. The assigned ID is returned so the caller can match
// the reply (replies may complete out of request order; correlation is by
// responseTo, not arrival).
func (c *Conn) Send(m proto.RequestMaker) (int32, error) {
	if !c.State().Usable() {
		return 0, ErrChannelNotUsable
	}
	req := m.Make(c.reqID.Add(1))
	p, err := req.Encode()
	if err != nil {
		return 0, fmt.Errorf("encode request %d: %w", req.RequestID, err)
	}
	if _, err := c.nc.Write(p); err != nil {
		return 0, fmt.Errorf("write request %d: %w", req.RequestID, err)
	}
	return req.RequestID, nil
}

// Responses is the ordered per-connection response queue. It carries
// responses in the order their bytes arrived and is closed when the Serve
// loop ends. Exactly one consumer may receive from it.
func (c *Conn) Responses() <-chan *proto.Response {
	return c.responses
}

// Serve reads the transport until it closes, slicing the stream into
// frames and delivering one decoded Response per frame. A response that
// fails to decode is dropped and logged; the frame decoder's buffering is
// unaffected, so subsequent frames still parse.
func (c *Conn) Serve() {
	defer func() {
		c.SetState(nodeset.Closed{})
		close(c.responses)
	}()

	var dec proto.FrameDecoder
	buf := make([]byte, 4096)
	for {
		n, err := c.nc.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			c.drain(&dec)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				c.log.Error().Err(err).Msg("read transport")
			}
			return
		}
	}
}

func (c *Conn) drain(dec *proto.FrameDecoder) {
	for {
		frame, ok := dec.Next()
		if !ok {
			return
		}
		resp, err := proto.DecodeResponse(frame, proto.ResponseInfo{ChannelID: c.channelID}, proto.ParseReply)
		if err != nil {
			c.log.Error().Err(err).Msg("decode response")
			continue
		}
		c.responses <- resp
	}
}

// CheckError applies the error-reply rule to a received response: if the
// reply is flagged as failed and its first document decodes as a
// structured error, that error is returned. A failed reply with no
// decodable error document is treated as a success — kept as-is from the
// wire protocol's longstanding behavior — and logged at warning level.
func (c *Conn) CheckError(resp *proto.Response) error {
	err, accounted := proto.ExtractError(resp)
	if !accounted {
		c.log.Warn().
			Int32("responseTo", resp.Header.ResponseTo).
			Msg("reply flagged as failed but carried no decodable error document; treating as success")
	}
	return err
}

// Close shuts the transport down. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.SetState(nodeset.Closed{})
		err = c.nc.Close()
	})
	return err
}
