// Package wire converts fixed-width scalar values to and from a canonical
// big-endian byte representation.
//
// The package guarantees that encoding a value and decoding it back is the
// identity function for every supported type, independent of the host
// platform. Multi-byte words pass through a ByteOrder backend; two
// interchangeable backends exist, a portable shift-and-mask implementation
// and one delegating to the platform-optimised encoding/binary routines,
// and both produce identical byte streams.
//
// # Usage
//
// Encode scalars onto a buffer:
//
//	buf, err := wire.Append(nil, uint64(0xdeadbeef10204080))
//
// Decode with an explicit type:
//
//	v, err := wire.Decode[uint64](buf)
//
// Types without a conversion (maps, structs, pointers) fail with
// ErrUnsupportedConversion at the call site; no value is ever silently
// truncated.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package wire
