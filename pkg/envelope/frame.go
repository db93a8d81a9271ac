package envelope

import "sync"

// Ownership describes who is responsible for a frame's backing buffer.
type Ownership int

const (
	// OwnedCopy means the frame holds a private buffer nobody else references.
	OwnedCopy Ownership = iota

	// Borrowed means the frame references caller memory it does not own.
	// The caller keeps the buffer valid for the lifetime of the frame.
	Borrowed

	// Moved means the frame references caller memory whose ownership was
	// transferred; the release callback hands it back when no longer needed.
	Moved
)

// String returns the ownership mode name.
func (o Ownership) String() string {
	switch o {
	case OwnedCopy:
		return "owned"
	case Borrowed:
		return "borrowed"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// ReleaseFunc frees a moved buffer once it is no longer needed. A transport
// may invoke it from any of its internal goroutines, at any later time, so
// implementations must not assume anything about the calling goroutine.
// It runs exactly once per frame.
type ReleaseFunc func(buf []byte, hint any)

// Frame is one wire-transmissible chunk of bytes, the atomic unit handed to
// and from a transport. Its length is fixed at construction. Frames are not
// internally synchronised apart from the release callback guard.
type Frame struct {
	buf     []byte
	mode    Ownership
	release ReleaseFunc
	hint    any
	once    sync.Once
	sent    bool
}

// NewFrame returns an owned, zero-initialised frame of n bytes meant for
// in-place writing through Data.
func NewFrame(n int) *Frame {
	return &Frame{buf: make([]byte, n)}
}

// CopyFrame duplicates b into newly owned storage. The source may be reused
// or freed as soon as the call returns.
func CopyFrame(b []byte) *Frame {
	return &Frame{buf: append([]byte(nil), b...)}
}

// BorrowFrame wraps b without copying. The frame never mutates or frees the
// buffer; the caller guarantees it stays valid while the frame is alive.
func BorrowFrame(b []byte) *Frame {
	return &Frame{buf: b, mode: Borrowed}
}

// MoveFrame wraps b without copying and transfers responsibility for the
// buffer to the frame: release fires exactly once, with b and hint, when the
// frame is destroyed or the transport signals completion. A nil release
// degrades to a plain borrow.
func MoveFrame(b []byte, release ReleaseFunc, hint any) *Frame {
	if release == nil {
		return BorrowFrame(b)
	}
	return &Frame{buf: b, mode: Moved, release: release, hint: hint}
}

// Size returns the byte length of the frame.
func (f *Frame) Size() int {
	return len(f.buf)
}

// Data returns the frame's backing bytes without copying. For borrowed and
// moved frames the slice aliases caller memory; the usual lifetime caveats
// apply.
func (f *Frame) Data() []byte {
	return f.buf
}

// Ownership returns the frame's ownership mode.
func (f *Frame) Ownership() Ownership {
	return f.mode
}

// Hint returns the opaque value passed to MoveFrame, nil otherwise.
func (f *Frame) Hint() any {
	return f.hint
}

// Copy returns a new frame owning an independent duplicate of the content,
// regardless of the original's ownership mode.
func (f *Frame) Copy() *Frame {
	return CopyFrame(f.buf)
}

// MarkSent records that the frame was handed to the transport. The flag is
// one-way; marking a frame twice is a caller bug and panics.
func (f *Frame) MarkSent() {
	if f.sent {
		panic("envelope: frame already marked as sent")
	}
	f.sent = true
}

// IsSent reports whether the frame was handed to the transport.
func (f *Frame) IsSent() bool {
	return f.sent
}

// Release fires the release callback if the frame carries one. Safe to call
// more than once and from any goroutine; the callback runs at most once over
// the frame's lifetime. Borrowed and owned frames are untouched.
func (f *Frame) Release() {
	if f.release == nil {
		return
	}
	f.once.Do(func() {
		f.release(f.buf, f.hint)
	})
}
