package wire

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedConversion indicates a value whose type has no big-endian
// conversion. Check with errors.Is.
var ErrUnsupportedConversion = errors.New("wire: unsupported conversion")

// ErrShortBuffer indicates a decode source whose length does not match the
// width of the requested scalar type.
var ErrShortBuffer = errors.New("wire: buffer length does not match scalar width")

// Size returns the encoded byte width of v and whether v is encodable.
// int and uint always encode as 8 bytes so that streams stay portable
// between 32- and 64-bit hosts. Strings and byte slices report their
// own length; they are copied verbatim with no length prefix.
func Size(v any) (int, bool) {
	switch x := v.(type) {
	case bool, int8, uint8:
		return 1, true
	case int16, uint16:
		return 2, true
	case int32, uint32, float32:
		return 4, true
	case int64, uint64, int, uint, float64:
		return 8, true
	case string:
		return len(x), true
	case []byte:
		return len(x), true
	default:
		return 0, false
	}
}

// Append encodes v in big-endian order and appends the bytes to dst,
// returning the extended slice. Fixed-width scalars occupy exactly their
// encoded width; strings and byte slices are appended unchanged.
func Append(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil
	case uint8:
		return append(dst, x), nil
	case int8:
		return append(dst, byte(x)), nil
	case uint16:
		var b [2]byte
		order.PutUint16(b[:], x)
		return append(dst, b[:]...), nil
	case int16:
		return Append(dst, uint16(x))
	case uint32:
		var b [4]byte
		order.PutUint32(b[:], x)
		return append(dst, b[:]...), nil
	case int32:
		return Append(dst, uint32(x))
	case float32:
		return Append(dst, math.Float32bits(x))
	case uint64:
		var b [8]byte
		order.PutUint64(b[:], x)
		return append(dst, b[:]...), nil
	case int64:
		return Append(dst, uint64(x))
	case int:
		return Append(dst, uint64(int64(x)))
	case uint:
		return Append(dst, uint64(x))
	case float64:
		return Append(dst, math.Float64bits(x))
	case string:
		return append(dst, x...), nil
	case []byte:
		return append(dst, x...), nil
	default:
		return dst, fmt.Errorf("%w: %T", ErrUnsupportedConversion, v)
	}
}

// Decode reconstructs a native value of type T from its big-endian byte
// representation. The source must be exactly sizeof(T) bytes for scalars;
// string and []byte consume the whole source, []byte as a fresh copy.
func Decode[T any](b []byte) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		if err := width(b, 1, "bool"); err != nil {
			return v, err
		}
		*p = b[0] > 0
	case *uint8:
		if err := width(b, 1, "uint8"); err != nil {
			return v, err
		}
		*p = b[0]
	case *int8:
		if err := width(b, 1, "int8"); err != nil {
			return v, err
		}
		*p = int8(b[0])
	case *uint16:
		if err := width(b, 2, "uint16"); err != nil {
			return v, err
		}
		*p = order.Uint16(b)
	case *int16:
		if err := width(b, 2, "int16"); err != nil {
			return v, err
		}
		*p = int16(order.Uint16(b))
	case *uint32:
		if err := width(b, 4, "uint32"); err != nil {
			return v, err
		}
		*p = order.Uint32(b)
	case *int32:
		if err := width(b, 4, "int32"); err != nil {
			return v, err
		}
		*p = int32(order.Uint32(b))
	case *float32:
		if err := width(b, 4, "float32"); err != nil {
			return v, err
		}
		*p = math.Float32frombits(order.Uint32(b))
	case *uint64:
		if err := width(b, 8, "uint64"); err != nil {
			return v, err
		}
		*p = order.Uint64(b)
	case *int64:
		if err := width(b, 8, "int64"); err != nil {
			return v, err
		}
		*p = int64(order.Uint64(b))
	case *int:
		if err := width(b, 8, "int"); err != nil {
			return v, err
		}
		*p = int(int64(order.Uint64(b)))
	case *uint:
		if err := width(b, 8, "uint"); err != nil {
			return v, err
		}
		*p = uint(order.Uint64(b))
	case *float64:
		if err := width(b, 8, "float64"); err != nil {
			return v, err
		}
		*p = math.Float64frombits(order.Uint64(b))
	case *string:
		*p = string(b)
	case *[]byte:
		*p = append([]byte(nil), b...)
	default:
		return v, fmt.Errorf("%w: %T", ErrUnsupportedConversion, v)
	}
	return v, nil
}

func width(b []byte, n int, typ string) error {
	if len(b) != n {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrShortBuffer, typ, n, len(b))
	}
	return nil
}
