// Package envelope implements the multi-part message container: an ordered
// sequence of frames forming one logical transmission unit, plus the typed
// composition and extraction surface built on the wire codec.
//
// A Frame owns one contiguous byte buffer under one of three ownership
// modes: a private copy, borrowed caller memory, or moved caller memory
// that is handed back through a release callback exactly once. A Message
// is a double-ended sequence of frames with a forward read cursor.
//
// # Usage
//
// Compose and consume a message:
//
//	msg, err := envelope.New("quote", uint64(42), 99.5)
//	if err != nil {
//	    return err
//	}
//	defer msg.Close()
//
//	var topic string
//	if err := msg.Read(&topic); err != nil {
//	    return err
//	}
//
// Typed access by part index:
//
//	price, err := envelope.Get[float64](msg, 2)
//
// Neither Message nor Frame is internally synchronised; concurrent mutation
// of one instance needs external locking. Release callbacks may fire on any
// goroutine once a transport is done with a buffer.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package envelope
