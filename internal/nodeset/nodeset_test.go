package nodeset

import "testing"

func TestNodeStateFromCode_WireCodes(t *testing.T) {
	cases := []struct {
		code int32
		want NodeState
	}{
		{1, StatePrimary},
		{2, StateSecondary},
		{3, StateRecovering},
		{4, StateFatal},
		{5, StateStarting},
		{6, StateUnknown},
		{7, StateArbiter},
		{8, StateDown},
		{9, StateRollback},
	}
	for _, c := range cases {
		if got := NodeStateFromCode(c.code); got != c.want {
			t.Fatalf("code %d: got %v, want %v", c.code, got, c.want)
		}
	}
}

func TestNodeStateFromCode_Totality(t *testing.T) {
	for _, code := range []int32{0, 10, 11, 42, -1, -9, 1 << 30} {
		if got := NodeStateFromCode(code); got != StateNone {
			t.Fatalf("code %d: got %v, want NONE", code, got)
		}
	}
}

func TestNodeState_String(t *testing.T) {
	if s := StateRecovering.String(); s != "RECOVERING" {
		t.Fatalf("got %q", s)
	}
	if s := StateNotConnected.String(); s != "NOT_CONNECTED" {
		t.Fatalf("got %q", s)
	}
	if s := NodeState(99).String(); s != "NodeState(99)" {
		t.Fatalf("got %q", s)
	}
}

func TestChannelState_Usable(t *testing.T) {
	cases := []struct {
		state ChannelState
		want  bool
	}{
		{NotConnected{}, false},
		{Closed{}, false},
		{Ready{}, true},
		{Authenticating{DB: "db", User: "u", Password: "p"}, true},
		{Authenticating{DB: "db", User: "u", Password: "p", Nonce: "abc"}, true},
	}
	for _, c := range cases {
		if got := c.state.Usable(); got != c.want {
			t.Fatalf("%v: usable = %v, want %v", c.state, got, c.want)
		}
	}
}
