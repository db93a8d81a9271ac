package envelope

import (
	"fmt"

	"github.com/bft-labs/parcel/pkg/wire"
)

// Signal is a small control code carried as the sole frame of a message.
// On the wire it is a big-endian 64-bit value whose 56 high-order bits hold
// a reserved header pattern and whose low byte holds the code.
type Signal int64

// signalHeader is the reserved pattern occupying the high-order bits of
// every signal frame, distinguishing control tokens from ordinary payloads.
const signalHeader int64 = 0x70617263656c // "parcel"

// SignalFrameSize is the exact byte width of a signal frame.
const SignalFrameSize = 8

const (
	// SignalTest is a liveness probe exchanged between cooperating endpoints.
	SignalTest Signal = Signal(signalHeader<<8) + iota

	// SignalStop asks the receiving end to shut down its loop.
	SignalStop
)

// Code returns the low-byte control code of the signal.
func (s Signal) Code() uint8 {
	return uint8(s)
}

// String returns a human-readable signal name.
func (s Signal) String() string {
	switch s {
	case SignalTest:
		return "test"
	case SignalStop:
		return "stop"
	default:
		return fmt.Sprintf("signal(%#x)", int64(s))
	}
}

// ParseSignal maps a signal name back to its value.
func ParseSignal(name string) (Signal, error) {
	switch name {
	case "test":
		return SignalTest, nil
	case "stop":
		return SignalStop, nil
	default:
		return 0, fmt.Errorf("envelope: unknown signal %q", name)
	}
}

// NewSignal returns a one-frame message carrying s, built through the
// ordinary stream-insertion path.
func NewSignal(s Signal) *Message {
	m := &Message{}
	// Signal encodes as int64, which cannot fail.
	_ = m.Write(s)
	return m
}

// IsSignal reports whether the message looks like a control signal: exactly
// one frame, exactly eight bytes, and the 56 high-order bits matching the
// reserved header once the code byte is discarded. An arbitrary payload that
// happens to match the pattern is indistinguishable from a real signal;
// endpoints agree on signal usage by convention.
func (m *Message) IsSignal() bool {
	if m.parts.len() != 1 {
		return false
	}
	f := m.parts.at(0)
	if f.Size() != SignalFrameSize {
		return false
	}
	v, err := wire.Decode[int64](f.Data())
	return err == nil && v>>8 == signalHeader
}
