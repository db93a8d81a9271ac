// Package parcel provides a multi-part message envelope with a portable
// big-endian codec: one logical message is an ordered sequence of frames,
// each frame one byte buffer with a defined ownership mode.
//
// Example usage:
//
//	msg, err := parcel.NewMessage("ticker", uint64(42), 99.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer msg.Close()
//
//	var topic string
//	if err := msg.Read(&topic); err != nil {
//	    log.Fatal(err)
//	}
package parcel

import (
	"github.com/bft-labs/parcel/pkg/envelope"
)

// Message is an ordered multi-part message with a forward read cursor.
type Message = envelope.Message

// Frame is one wire-transmissible chunk of bytes with a defined ownership mode.
type Frame = envelope.Frame

// Ownership describes who is responsible for a frame's backing buffer.
type Ownership = envelope.Ownership

// ReleaseFunc frees a moved buffer once a transport no longer needs it.
type ReleaseFunc = envelope.ReleaseFunc

// Signal is a control code carried as the sole frame of a message.
type Signal = envelope.Signal

// Event is a transport monitoring record delivered as a two-frame message.
type Event = envelope.Event

// Frame ownership modes.
const (
	OwnedCopy = envelope.OwnedCopy
	Borrowed  = envelope.Borrowed
	Moved     = envelope.Moved
)

// Well-known signals.
const (
	SignalTest = envelope.SignalTest
	SignalStop = envelope.SignalStop
)

// NewMessage returns a message pre-populated by encoding each value in
// order, one frame per value.
func NewMessage(values ...any) (*Message, error) {
	return envelope.New(values...)
}

// NewSignal returns a one-frame message carrying s.
func NewSignal(s Signal) *Message {
	return envelope.NewSignal(s)
}

// Get decodes the frame at part as type T.
func Get[T any](m *Message, part int) (T, error) {
	return envelope.Get[T](m, part)
}

// Sender is the transport boundary. Implementations deliver either every
// frame of a message or none of them, mark each frame sent as it is handed
// off, and fire each moved frame's release callback exactly once, possibly
// from an internal goroutine, once the buffer is no longer needed. They
// never free owned buffers.
type Sender interface {
	Send(msg *Message) error
}
