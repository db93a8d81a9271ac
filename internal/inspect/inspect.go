// Package inspect renders container frames for human consumption and drives
// the follow loop of `parcel inspect --follow`.
package inspect

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/parcel/internal/watch"
	"github.com/bft-labs/parcel/internal/wirefile"
	"github.com/bft-labs/parcel/pkg/envelope"
	"github.com/bft-labs/parcel/pkg/wire"
)

// Options controls frame rendering.
type Options struct {
	// MaxDump caps the hex dump per frame; 0 disables the dump.
	MaxDump int

	// Out receives the rendered frames.
	Out io.Writer
}

// PrintFrames renders frames starting at global index start. Each frame is
// shown with its size, candidate typed decodings for the common scalar
// widths, and a bounded hex dump. Signal frames are called out by name.
func PrintFrames(opts Options, start int, frames [][]byte) {
	for i, data := range frames {
		printFrame(opts, start+i, data)
	}
}

func printFrame(opts Options, index int, data []byte) {
	fmt.Fprintf(opts.Out, "frame %d  (%d bytes)\n", index, len(data))

	if sig, ok := asSignal(data); ok {
		fmt.Fprintf(opts.Out, "  signal: %s\n", sig)
	}
	switch len(data) {
	case 2:
		if v, err := wire.Decode[uint16](data); err == nil {
			fmt.Fprintf(opts.Out, "  u16: %d\n", v)
		}
	case 4:
		if v, err := wire.Decode[uint32](data); err == nil {
			fmt.Fprintf(opts.Out, "  u32: %d\n", v)
		}
		if v, err := wire.Decode[float32](data); err == nil {
			fmt.Fprintf(opts.Out, "  f32: %g\n", v)
		}
	case 8:
		if v, err := wire.Decode[uint64](data); err == nil {
			fmt.Fprintf(opts.Out, "  u64: %d\n", v)
		}
		if v, err := wire.Decode[float64](data); err == nil {
			fmt.Fprintf(opts.Out, "  f64: %g\n", v)
		}
	}
	if printable(data) {
		fmt.Fprintf(opts.Out, "  str: %q\n", data)
	}
	if opts.MaxDump > 0 {
		dump := data
		suffix := ""
		if len(dump) > opts.MaxDump {
			dump = dump[:opts.MaxDump]
			suffix = fmt.Sprintf(" … %d more", len(data)-opts.MaxDump)
		}
		fmt.Fprintf(opts.Out, "  hex: %s%s\n", hex.EncodeToString(dump), suffix)
	}
}

// asSignal reports whether a lone frame of these bytes would be flagged as a
// control signal, reusing the envelope detection path.
func asSignal(data []byte) (envelope.Signal, bool) {
	if len(data) != envelope.SignalFrameSize {
		return 0, false
	}
	var msg envelope.Message
	msg.AddBytes(data)
	if !msg.IsSignal() {
		return 0, false
	}
	sig, err := envelope.Get[envelope.Signal](&msg, 0)
	if err != nil {
		return 0, false
	}
	return sig, true
}

func printable(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// Follow prints the frames already in the container, then re-reads from the
// last offset whenever the file changes, until ctx is cancelled.
func Follow(ctx context.Context, log zerolog.Logger, opts Options, path string, debounce time.Duration) error {
	var offset int64
	index := 0

	drain := func() {
		frames, next, err := wirefile.ReadFrom(path, offset)
		if err != nil {
			log.Warn().Err(err).Msg("read container")
			return
		}
		PrintFrames(opts, index, frames)
		index += len(frames)
		offset = next
	}

	drain()
	err := watch.File(ctx, path, debounce, drain)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
