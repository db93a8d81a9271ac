package wire

import "encoding/binary"

// ByteOrder converts multi-byte words between their native representation
// and a big-endian byte stream. Put methods write exactly the word width
// into b; Uint methods read exactly the word width from b.
type ByteOrder interface {
	PutUint16(b []byte, v uint16)
	PutUint32(b []byte, v uint32)
	PutUint64(b []byte, v uint64)
	Uint16(b []byte) uint16
	Uint32(b []byte) uint32
	Uint64(b []byte) uint64
}

// Portable is the shift-and-mask implementation. It makes no assumption
// about host endianness and serves as the reference for equivalence tests.
var Portable ByteOrder = portableOrder{}

// Native delegates to encoding/binary's big-endian routines, which the
// compiler lowers to single byte-swap instructions on common targets.
var Native ByteOrder = nativeOrder{}

var order = Native

// UseOrder selects the backend used by the package-level conversion
// functions. Intended to be called once during startup, before any
// encoding happens; it is not synchronised against concurrent use.
func UseOrder(o ByteOrder) {
	order = o
}

// PutUint16 writes v to b[0:2] in big-endian order.
func PutUint16(b []byte, v uint16) { order.PutUint16(b, v) }

// PutUint32 writes v to b[0:4] in big-endian order.
func PutUint32(b []byte, v uint32) { order.PutUint32(b, v) }

// PutUint64 writes v to b[0:8] in big-endian order.
func PutUint64(b []byte, v uint64) { order.PutUint64(b, v) }

// Uint16 reads a big-endian word from b[0:2].
func Uint16(b []byte) uint16 { return order.Uint16(b) }

// Uint32 reads a big-endian word from b[0:4].
func Uint32(b []byte) uint32 { return order.Uint32(b) }

// Uint64 reads a big-endian word from b[0:8].
func Uint64(b []byte) uint64 { return order.Uint64(b) }

type portableOrder struct{}

func (portableOrder) PutUint16(b []byte, v uint16) {
	_ = b[1]
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func (portableOrder) PutUint32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func (portableOrder) PutUint64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

func (portableOrder) Uint16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func (portableOrder) Uint32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (portableOrder) Uint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

type nativeOrder struct{}

func (nativeOrder) PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func (nativeOrder) PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func (nativeOrder) PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }
func (nativeOrder) Uint16(b []byte) uint16       { return binary.BigEndian.Uint16(b) }
func (nativeOrder) Uint32(b []byte) uint32       { return binary.BigEndian.Uint32(b) }
func (nativeOrder) Uint64(b []byte) uint64       { return binary.BigEndian.Uint64(b) }
