package envelope

import (
	"fmt"

	"github.com/bft-labs/parcel/pkg/wire"
)

// Event is a monitoring record as delivered by a transport's event channel:
// an ordinary two-frame message with a fixed-size binary record in frame 0
// and the endpoint address string in frame 1.
type Event struct {
	Code    uint16
	Value   uint32
	Address string
}

// EventRecordSize is the byte width of the binary record in frame 0.
const EventRecordSize = 6

// NewEventMessage encodes ev as its two-frame wire form.
func NewEventMessage(ev Event) *Message {
	rec := make([]byte, EventRecordSize)
	wire.PutUint16(rec[0:2], ev.Code)
	wire.PutUint32(rec[2:6], ev.Value)

	m := &Message{}
	m.AddBytes(rec)
	m.AddString(ev.Address)
	return m
}

// ParseEvent decodes a monitoring event from m using the standard part
// accessors; no special-casing happens below the public surface.
func ParseEvent(m *Message) (Event, error) {
	var ev Event
	if m.Parts() != 2 {
		return ev, fmt.Errorf("envelope: monitor event has %d parts, want 2", m.Parts())
	}
	rec, err := m.Data(0)
	if err != nil {
		return ev, err
	}
	if len(rec) != EventRecordSize {
		return ev, fmt.Errorf("envelope: monitor event record is %d bytes, want %d", len(rec), EventRecordSize)
	}
	code, err := wire.Decode[uint16](rec[0:2])
	if err != nil {
		return ev, err
	}
	value, err := wire.Decode[uint32](rec[2:6])
	if err != nil {
		return ev, err
	}
	address, err := Get[string](m, 1)
	if err != nil {
		return ev, err
	}
	ev.Code = code
	ev.Value = value
	ev.Address = address
	return ev, nil
}
