// Package nodeset defines the vocabulary connection management uses to
// label remote nodes and channels: the replica-role enumeration a node
// self-reports and the per-channel usability states. It stores and
// classifies this metadata; routing decisions belong elsewhere.
package nodeset

import "strconv"

// NodeState is a remote node's last self-reported replication role.
// States 1 through 9 carry a wire integer code; None, NotConnected and
// Connected are driver-local and never appear on the wire. The zero value
// is None.
type NodeState int32

const (
	StateNone       NodeState = 0
	StatePrimary    NodeState = 1
	StateSecondary  NodeState = 2
	StateRecovering NodeState = 3
	StateFatal      NodeState = 4
	StateStarting   NodeState = 5
	StateUnknown    NodeState = 6
	StateArbiter    NodeState = 7
	StateDown       NodeState = 8
	StateRollback   NodeState = 9

	// Driver-local, no wire code.
	StateNotConnected NodeState = 10
	StateConnected    NodeState = 11
)

// NodeStateFromCode maps a wire code to its state. Codes 1 through 9 map
// one-to-one; everything else maps to StateNone.
func NodeStateFromCode(code int32) NodeState {
	if code >= 1 && code <= 9 {
		return NodeState(code)
	}
	return StateNone
}

func (s NodeState) String() string {
	switch s {
	case StateNone:
		return "NONE"
	case StatePrimary:
		return "PRIMARY"
	case StateSecondary:
		return "SECONDARY"
	case StateRecovering:
		return "RECOVERING"
	case StateFatal:
		return "FATAL"
	case StateStarting:
		return "STARTING"
	case StateUnknown:
		return "UNKNOWN"
	case StateArbiter:
		return "ARBITER"
	case StateDown:
		return "DOWN"
	case StateRollback:
		return "ROLLBACK"
	case StateNotConnected:
		return "NOT_CONNECTED"
	case StateConnected:
		return "CONNECTED"
	}
	return "NodeState(" + strconv.Itoa(int(s)) + ")"
}

// ChannelState labels one logical transport connection's usability. The
// variant set is closed: NotConnected, Closed, Ready and Authenticating.
// Queries may be dispatched on a channel whose state is Usable; transitions
// are owned by external connection management.
type ChannelState interface {
	Usable() bool
	channelState()
}

// NotConnected marks a channel whose transport is not established.
type NotConnected struct{}

// Closed marks a channel shut down for good.
type Closed struct{}

// Ready marks a fully usable channel.
type Ready struct{}

// Authenticating marks a channel with an in-flight authentication
// handshake. Nonce is empty until the server's nonce has been received.
// The channel is already usable: queries may be dispatched while the
// handshake completes.
type Authenticating struct {
	DB       string
	User     string
	Password string
	Nonce    string
}

func (NotConnected) Usable() bool   { return false }
func (Closed) Usable() bool         { return false }
func (Ready) Usable() bool          { return true }
func (Authenticating) Usable() bool { return true }

func (NotConnected) channelState()   {}
func (Closed) channelState()         {}
func (Ready) channelState()          {}
func (Authenticating) channelState() {}

func (NotConnected) String() string { return "NotConnected" }
func (Closed) String() string       { return "Closed" }
func (Ready) String() string        { return "Ready" }
func (a Authenticating) String() string {
	return "Authenticating(" + a.DB + "/" + a.User + ")"
}
