package envelope

import (
	"errors"
	"fmt"

	"github.com/bft-labs/parcel/pkg/wire"
)

// ErrRange indicates a part index outside [0, Parts()).
var ErrRange = errors.New("envelope: message part outside valid range")

// ErrReadExhausted indicates a stream read past the last available part.
var ErrReadExhausted = errors.New("envelope: no message parts left to read")

// Message is an ordered multi-part message: a double-ended sequence of
// frames plus a forward read cursor. The zero value is an empty message
// ready for use. A transport delivers either every frame of a message or
// none of them.
type Message struct {
	parts  frameDeque
	cursor int
}

// New returns a message pre-populated by encoding each value in order, one
// frame per value. On error the partially built message is released.
func New(values ...any) (*Message, error) {
	m := &Message{}
	if err := m.Add(values...); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// Parts returns the current frame count.
func (m *Message) Parts() int {
	return m.parts.len()
}

func (m *Message) frame(part int) (*Frame, error) {
	if part < 0 || part >= m.parts.len() {
		return nil, fmt.Errorf("%w: part %d of %d", ErrRange, part, m.parts.len())
	}
	return m.parts.at(part), nil
}

// Size returns the byte length of the frame at part.
func (m *Message) Size(part int) (int, error) {
	f, err := m.frame(part)
	if err != nil {
		return 0, err
	}
	return f.Size(), nil
}

// Data returns the backing bytes of the frame at part without copying.
// The slice stays valid only as long as the frame does.
func (m *Message) Data(part int) ([]byte, error) {
	f, err := m.frame(part)
	if err != nil {
		return nil, err
	}
	return f.Data(), nil
}

// Frame returns the frame at part.
func (m *Message) Frame(part int) (*Frame, error) {
	return m.frame(part)
}

// Add encodes each value left to right, appending one trailing frame per
// value. Scalars are encoded big-endian; strings and byte slices are copied
// verbatim with no length prefix.
func (m *Message) Add(values ...any) error {
	for _, v := range values {
		if err := m.Write(v); err != nil {
			return err
		}
	}
	return nil
}

// AddBytes copies b into a new trailing frame.
func (m *Message) AddBytes(b []byte) {
	m.parts.pushBack(CopyFrame(b))
}

// AddString copies s into a new trailing frame.
func (m *Message) AddString(s string) {
	m.parts.pushBack(CopyFrame([]byte(s)))
}

// AddNoCopy appends a frame over b without copying. With a nil release the
// frame merely borrows b and the caller keeps responsibility for the buffer;
// otherwise ownership transfers and release fires exactly once, possibly
// from a transport goroutine, when the buffer is no longer needed.
func (m *Message) AddNoCopy(b []byte, release ReleaseFunc, hint any) {
	m.parts.pushBack(MoveFrame(b, release, hint))
}

// Move appends b as an ownership-transfer frame. The message retains the
// callback and guarantees it is invoked exactly once over the lifetime of
// the frame, whether through Close, pop and remove operations, or the
// transport signalling completion.
func (m *Message) Move(b []byte, release ReleaseFunc) {
	m.AddNoCopy(b, release, nil)
}

// Reserve appends an owned zero-filled frame of n bytes and returns its
// buffer for in-place writing.
func (m *Message) Reserve(n int) []byte {
	f := NewFrame(n)
	m.parts.pushBack(f)
	return f.Data()
}

// ReserveFront prepends an owned zero-filled frame of n bytes and returns
// its buffer for in-place writing.
func (m *Message) ReserveFront(n int) []byte {
	f := NewFrame(n)
	m.parts.pushFront(f)
	return f.Data()
}

// Write encodes v and appends it as a new trailing frame. This is the
// stream-insertion path; Add and New are built on it.
func (m *Message) Write(v any) error {
	f, err := encodeFrame(v)
	if err != nil {
		return err
	}
	m.parts.pushBack(f)
	return nil
}

// PushBack is an alias for Write, matching PushFront.
func (m *Message) PushBack(v any) error {
	return m.Write(v)
}

// PushFront encodes v and prepends it as a new leading frame, the routing
// envelope case.
func (m *Message) PushFront(v any) error {
	f, err := encodeFrame(v)
	if err != nil {
		return err
	}
	m.parts.pushFront(f)
	return nil
}

// PushFrontBytes copies b into a new leading frame.
func (m *Message) PushFrontBytes(b []byte) {
	m.parts.pushFront(CopyFrame(b))
}

// PopFront removes and destroys the first frame. Destroying a moved frame
// fires its release callback. No-op on an empty message.
func (m *Message) PopFront() {
	if m.parts.len() == 0 {
		return
	}
	m.parts.popFront().Release()
}

// PopBack removes and destroys the last frame. No-op on an empty message.
func (m *Message) PopBack() {
	if m.parts.len() == 0 {
		return
	}
	m.parts.popBack().Release()
}

// Remove destroys the frame at part, shifting later frames down one
// position. O(n) in the number of remaining frames.
func (m *Message) Remove(part int) error {
	if part < 0 || part >= m.parts.len() {
		return fmt.Errorf("%w: part %d of %d", ErrRange, part, m.parts.len())
	}
	m.parts.remove(part).Release()
	return nil
}

// Get decodes the frame at part as type T. Fixed-width scalars must match
// the frame size exactly; string and []byte copy the whole frame. A type
// without a codec fails with wire.ErrUnsupportedConversion.
func Get[T any](m *Message, part int) (T, error) {
	var zero T
	f, err := m.frame(part)
	if err != nil {
		return zero, err
	}
	if s, ok := any(&zero).(*Signal); ok {
		v, err := wire.Decode[int64](f.Data())
		if err != nil {
			return zero, err
		}
		*s = Signal(v)
		return zero, nil
	}
	return wire.Decode[T](f.Data())
}

// Extract decodes consecutive parts starting at part 0, one destination
// pointer per part.
func (m *Message) Extract(dests ...any) error {
	return m.ExtractAt(0, dests...)
}

// ExtractAt decodes consecutive parts starting at start, one destination
// pointer per part. Extracting outside the message is a caller bug and
// panics; decode failures on individual parts are returned.
func (m *Message) ExtractAt(start int, dests ...any) error {
	if start < 0 || start+len(dests) > m.parts.len() {
		panic(fmt.Sprintf("envelope: extract of parts [%d,%d) from %d-part message", start, start+len(dests), m.parts.len()))
	}
	for i, dest := range dests {
		if err := m.decodeInto(start+i, dest); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes the frame at the read cursor into dest and advances the
// cursor by one. Reading past the last part fails with ErrReadExhausted and
// leaves the cursor unchanged.
func (m *Message) Read(dest any) error {
	if m.cursor >= m.parts.len() {
		return fmt.Errorf("%w: cursor %d, parts %d", ErrReadExhausted, m.cursor, m.parts.len())
	}
	if err := m.decodeInto(m.cursor, dest); err != nil {
		return err
	}
	m.cursor++
	return nil
}

// ReadCursor returns the cursor position for stream-style reading.
func (m *Message) ReadCursor() int {
	return m.cursor
}

// Remaining returns the number of parts at or after the read cursor.
func (m *Message) Remaining() int {
	return m.parts.len() - m.cursor
}

// Next advances the read cursor without decoding and returns the new cursor.
func (m *Message) Next() int {
	m.cursor++
	return m.cursor
}

// ResetReadCursor rewinds the cursor so the message can be re-read from the
// start, for example on retry.
func (m *Message) ResetReadCursor() {
	m.cursor = 0
}

// Copy returns a deep duplicate: every frame is copied into owned storage
// and the cursor position is preserved. Later mutation of either message
// never affects the other.
func (m *Message) Copy() *Message {
	out := &Message{cursor: m.cursor}
	for i := 0; i < m.parts.len(); i++ {
		out.parts.pushBack(m.parts.at(i).Copy())
	}
	return out
}

// CopyFrom replaces m's contents with a deep copy of src. Frames m held
// before the call are destroyed.
func (m *Message) CopyFrom(src *Message) {
	m.Close()
	m.cursor = src.cursor
	for i := 0; i < src.parts.len(); i++ {
		m.parts.pushBack(src.parts.at(i).Copy())
	}
}

// MoveOut transfers the frame sequence and cursor into a new message in
// O(1). The source is left with zero parts and cursor 0.
func (m *Message) MoveOut() *Message {
	out := &Message{}
	Swap(out, m)
	return out
}

// MoveFrom is the move-assignment form: m's cursor is reset, then contents
// are exchanged with src, so m takes over src's frames and cursor.
func (m *Message) MoveFrom(src *Message) {
	m.ResetReadCursor()
	Swap(m, src)
}

// Swap exchanges the contents of two messages.
func Swap(a, b *Message) {
	a.parts, b.parts = b.parts, a.parts
	a.cursor, b.cursor = b.cursor, a.cursor
}

// Sent marks the frame at part as handed to the transport. Marking a frame
// twice, or marking outside the valid range, is a caller bug and panics.
func (m *Message) Sent(part int) {
	f, err := m.frame(part)
	if err != nil {
		panic(err)
	}
	f.MarkSent()
}

// Detach hands the frame sequence over, in order, leaving the message with
// zero parts and cursor 0. Meant for transport send paths, which become
// responsible for releasing each frame.
func (m *Message) Detach() []*Frame {
	out := make([]*Frame, 0, m.parts.len())
	for m.parts.len() > 0 {
		out = append(out, m.parts.popFront())
	}
	m.cursor = 0
	return out
}

// Close destroys every contained frame, firing pending release callbacks,
// and resets the cursor. The message stays usable as an empty message.
func (m *Message) Close() {
	for m.parts.len() > 0 {
		m.parts.popBack().Release()
	}
	m.cursor = 0
}

func encodeFrame(v any) (*Frame, error) {
	if s, ok := v.(Signal); ok {
		v = int64(s)
	}
	n, _ := wire.Size(v)
	buf, err := wire.Append(make([]byte, 0, n), v)
	if err != nil {
		return nil, err
	}
	return &Frame{buf: buf}, nil
}

func (m *Message) decodeInto(part int, dest any) error {
	f, err := m.frame(part)
	if err != nil {
		return err
	}
	return decodeValue(f.Data(), dest)
}

func decodeValue(b []byte, dest any) error {
	switch p := dest.(type) {
	case *bool:
		return assign(b, p)
	case *int8:
		return assign(b, p)
	case *uint8:
		return assign(b, p)
	case *int16:
		return assign(b, p)
	case *uint16:
		return assign(b, p)
	case *int32:
		return assign(b, p)
	case *uint32:
		return assign(b, p)
	case *int64:
		return assign(b, p)
	case *uint64:
		return assign(b, p)
	case *int:
		return assign(b, p)
	case *uint:
		return assign(b, p)
	case *float32:
		return assign(b, p)
	case *float64:
		return assign(b, p)
	case *string:
		return assign(b, p)
	case *[]byte:
		return assign(b, p)
	case *Signal:
		v, err := wire.Decode[int64](b)
		if err != nil {
			return err
		}
		*p = Signal(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", wire.ErrUnsupportedConversion, dest)
	}
}

func assign[T any](b []byte, p *T) error {
	v, err := wire.Decode[T](b)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
