package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bft-labs/parcel/pkg/envelope"
	"github.com/bft-labs/parcel/pkg/wire"
)

func render(t *testing.T, opts Options, frames [][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	opts.Out = &buf
	PrintFrames(opts, 0, frames)
	return buf.String()
}

func TestPrintFramesTypedViews(t *testing.T) {
	u64 := make([]byte, 8)
	wire.PutUint64(u64, 42)

	out := render(t, Options{MaxDump: 64}, [][]byte{
		[]byte("hello"),
		u64,
	})

	if !strings.Contains(out, "frame 0  (5 bytes)") {
		t.Fatalf("missing frame header:\n%s", out)
	}
	if !strings.Contains(out, `str: "hello"`) {
		t.Fatalf("missing printable view:\n%s", out)
	}
	if !strings.Contains(out, "u64: 42") {
		t.Fatalf("missing u64 view:\n%s", out)
	}
}

func TestPrintFramesFlagsSignals(t *testing.T) {
	msg := envelope.NewSignal(envelope.SignalStop)
	data, err := msg.Data(0)
	if err != nil {
		t.Fatalf("data: %v", err)
	}

	out := render(t, Options{MaxDump: 64}, [][]byte{data})
	if !strings.Contains(out, "signal: stop") {
		t.Fatalf("signal not flagged:\n%s", out)
	}
}

func TestPrintFramesTruncatesDump(t *testing.T) {
	out := render(t, Options{MaxDump: 4}, [][]byte{bytes.Repeat([]byte{0xab}, 10)})
	if !strings.Contains(out, "abababab … 6 more") {
		t.Fatalf("dump not truncated:\n%s", out)
	}
}
