package parcel_test

import (
	"fmt"

	"github.com/bft-labs/parcel"
)

// ExampleNewMessage demonstrates composing and reading a multi-part message.
func ExampleNewMessage() {
	msg, err := parcel.NewMessage("ticker", uint64(42), 99.5)
	if err != nil {
		fmt.Printf("compose failed: %v\n", err)
		return
	}
	defer msg.Close()

	var (
		topic string
		seq   uint64
		price float64
	)
	if err := msg.Extract(&topic, &seq, &price); err != nil {
		fmt.Printf("extract failed: %v\n", err)
		return
	}
	fmt.Printf("%s %d %.1f\n", topic, seq, price)

	// Output: ticker 42 99.5
}

// ExampleMessage_Read demonstrates stream-style extraction with rewind.
func ExampleMessage_Read() {
	msg, _ := parcel.NewMessage(uint32(1), uint32(2))

	var a, b uint32
	_ = msg.Read(&a)
	_ = msg.Read(&b)

	msg.ResetReadCursor()
	var again uint32
	_ = msg.Read(&again)

	fmt.Println(a, b, again)

	// Output: 1 2 1
}

// ExampleNewSignal demonstrates control signals travelling as messages.
func ExampleNewSignal() {
	msg := parcel.NewSignal(parcel.SignalStop)
	fmt.Println(msg.Parts(), msg.IsSignal())

	sig, _ := parcel.Get[parcel.Signal](msg, 0)
	fmt.Println(sig)

	// Output:
	// 1 true
	// stop
}

// ExampleMessage_Move demonstrates zero-copy ownership transfer with a
// release callback, the way a transport hands buffers back.
func ExampleMessage_Move() {
	buf := []byte("externally owned")

	msg := &parcel.Message{}
	msg.Move(buf, func(b []byte, _ any) {
		fmt.Printf("released %d bytes\n", len(b))
	})

	// A transport (or Close) triggers the release exactly once.
	msg.Close()
	msg.Close()

	// Output: released 16 bytes
}
