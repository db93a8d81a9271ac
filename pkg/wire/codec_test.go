package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func roundTrip[T comparable](t *testing.T, v T, wantSize int) {
	t.Helper()

	b, err := Append(nil, v)
	if err != nil {
		t.Fatalf("append %v: %v", v, err)
	}
	if len(b) != wantSize {
		t.Fatalf("%v: expected %d bytes, got %d", v, wantSize, len(b))
	}
	got, err := Decode[T](b)
	if err != nil {
		t.Fatalf("decode %v: %v", v, err)
	}
	if got != v {
		t.Fatalf("round trip mismatch: put %v, got %v", v, got)
	}
}

func TestScalarRoundTrips(t *testing.T) {
	for _, v := range []bool{false, true} {
		roundTrip(t, v, 1)
	}
	for _, v := range []int8{0, -1, math.MinInt8, math.MaxInt8} {
		roundTrip(t, v, 1)
	}
	for _, v := range []uint8{0, 1, math.MaxUint8} {
		roundTrip(t, v, 1)
	}
	for _, v := range []int16{0, -1, math.MinInt16, math.MaxInt16} {
		roundTrip(t, v, 2)
	}
	for _, v := range []uint16{0, 1, math.MaxUint16} {
		roundTrip(t, v, 2)
	}
	for _, v := range []int32{0, -1, math.MinInt32, math.MaxInt32} {
		roundTrip(t, v, 4)
	}
	for _, v := range []uint32{0, 1, math.MaxUint32} {
		roundTrip(t, v, 4)
	}
	for _, v := range []int64{0, -1, math.MinInt64, math.MaxInt64} {
		roundTrip(t, v, 8)
	}
	for _, v := range []uint64{0, 1, math.MaxUint64} {
		roundTrip(t, v, 8)
	}
	for _, v := range []int{0, -1, math.MinInt32, math.MaxInt32} {
		roundTrip(t, v, 8)
	}
	for _, v := range []uint{0, 1, math.MaxUint32} {
		roundTrip(t, v, 8)
	}
	for _, v := range []float32{0, -1, 0.5, math.MaxFloat32, math.SmallestNonzeroFloat32} {
		roundTrip(t, v, 4)
	}
	for _, v := range []float64{0, -1, 3.14159265358979, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		roundTrip(t, v, 8)
	}
}

func TestFloatBitExactness(t *testing.T) {
	// NaN compares unequal to itself, so check the bit pattern instead.
	nan := math.Float64frombits(0x7ff8000000000001)
	b, err := Append(nil, nan)
	if err != nil {
		t.Fatalf("append NaN: %v", err)
	}
	got, err := Decode[float64](b)
	if err != nil {
		t.Fatalf("decode NaN: %v", err)
	}
	if math.Float64bits(got) != math.Float64bits(nan) {
		t.Fatalf("NaN payload lost: %#x != %#x", math.Float64bits(got), math.Float64bits(nan))
	}
}

func TestStringAndBytesPassThrough(t *testing.T) {
	b, err := Append(nil, "hello")
	if err != nil {
		t.Fatalf("append string: %v", err)
	}
	if !bytes.Equal(b, []byte("hello")) {
		t.Fatalf("expected raw copy, got %q", b)
	}
	s, err := Decode[string](b)
	if err != nil || s != "hello" {
		t.Fatalf("decode string: %q, %v", s, err)
	}

	raw := []byte{0, 1, 2, 3}
	b, err = Append(nil, raw)
	if err != nil {
		t.Fatalf("append bytes: %v", err)
	}
	out, err := Decode[[]byte](b)
	if err != nil || !bytes.Equal(out, raw) {
		t.Fatalf("decode bytes: %x, %v", out, err)
	}
	// Decode must hand back an independent copy.
	out[0] = 0xff
	if b[0] == 0xff {
		t.Fatal("decoded slice aliases the source buffer")
	}
}

func TestUnsupportedConversion(t *testing.T) {
	if _, err := Append(nil, struct{ X int }{1}); !errors.Is(err, ErrUnsupportedConversion) {
		t.Fatalf("expected ErrUnsupportedConversion, got %v", err)
	}
	if _, err := Decode[map[string]int]([]byte{1}); !errors.Is(err, ErrUnsupportedConversion) {
		t.Fatalf("expected ErrUnsupportedConversion, got %v", err)
	}
}

func TestShortBuffer(t *testing.T) {
	if _, err := Decode[uint32]([]byte{1, 2}); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if _, err := Decode[uint16]([]byte{1, 2, 3}); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer for oversized source, got %v", err)
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		v    any
		want int
		ok   bool
	}{
		{true, 1, true},
		{int8(0), 1, true},
		{uint16(0), 2, true},
		{float32(0), 4, true},
		{int(0), 8, true},
		{uint(0), 8, true},
		{float64(0), 8, true},
		{"abcd", 4, true},
		{[]byte{1, 2}, 2, true},
		{struct{}{}, 0, false},
	}
	for _, tt := range tests {
		n, ok := Size(tt.v)
		if n != tt.want || ok != tt.ok {
			t.Fatalf("Size(%T): got (%d, %v), want (%d, %v)", tt.v, n, ok, tt.want, tt.ok)
		}
	}
}
