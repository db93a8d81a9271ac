// Package wirefile stores frame sequences in a flat container file.
//
// The wire encoding itself carries no framing (a receiver knows frame
// boundaries out of band), so the container adds its own: a 4-byte magic
// followed by one record per frame, each a big-endian uint32 length and the
// frame bytes. Appends are atomic enough for a single writer; readers can
// resume from a previously returned offset, which is what inspect --follow
// builds on.
package wirefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bft-labs/parcel/pkg/envelope"
	"github.com/bft-labs/parcel/pkg/wire"
)

// Magic identifies a parcel container file.
const Magic = "PCL1"

// ErrBadMagic indicates a file that is not a parcel container.
var ErrBadMagic = errors.New("wirefile: not a parcel container")

// maxFrameSize bounds a single record so a corrupt length field cannot
// trigger a giant allocation.
const maxFrameSize = 64 << 20

// AppendMessage appends every frame of msg to the container at path,
// creating the file with the magic header if it does not exist. The
// message is not consumed.
func AppendMessage(path string, msg *envelope.Message) error {
	frames := make([][]byte, 0, msg.Parts())
	for i := 0; i < msg.Parts(); i++ {
		data, err := msg.Data(i)
		if err != nil {
			return err
		}
		frames = append(frames, data)
	}
	return AppendFrames(path, frames)
}

// AppendFrames appends raw frame records to the container at path.
func AppendFrames(path string, frames [][]byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat container: %w", err)
	}
	buf := make([]byte, 0, 4)
	if st.Size() == 0 {
		buf = append(buf, Magic...)
	}
	var hdr [4]byte
	for _, frame := range frames {
		wire.PutUint32(hdr[:], uint32(len(frame)))
		buf = append(buf, hdr[:]...)
		buf = append(buf, frame...)
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("append container: %w", err)
	}
	return f.Close()
}

// ReadFrom reads frame records starting at offset and returns them with the
// offset of the first unread byte. Offset 0 means the start of the file,
// including the magic check. A record that is only partially written yet is
// left for the next call rather than reported as an error.
func ReadFrom(path string, offset int64) ([][]byte, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offset, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	if offset == 0 {
		var magic [len(Magic)]byte
		n, err := io.ReadFull(f, magic[:])
		if err == io.EOF || (err == io.ErrUnexpectedEOF && n < len(Magic)) {
			// Nothing (or not even a full magic) written yet.
			return nil, 0, nil
		}
		if err != nil {
			return nil, offset, fmt.Errorf("read magic: %w", err)
		}
		if string(magic[:]) != Magic {
			return nil, offset, ErrBadMagic
		}
		offset = int64(len(Magic))
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek container: %w", err)
	}

	var frames [][]byte
	for {
		var hdr [4]byte
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return frames, offset, nil
			}
			return frames, offset, fmt.Errorf("read record header: %w", err)
		}
		size := wire.Uint32(hdr[:])
		if size > maxFrameSize {
			return frames, offset, fmt.Errorf("record of %d bytes exceeds limit", size)
		}
		frame := make([]byte, size)
		if _, err := io.ReadFull(f, frame); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return frames, offset, nil
			}
			return frames, offset, fmt.Errorf("read record body: %w", err)
		}
		frames = append(frames, frame)
		offset += int64(4 + size)
	}
}

// ReadMessage reads the whole container as one message of copied frames.
func ReadMessage(path string) (*envelope.Message, error) {
	frames, _, err := ReadFrom(path, 0)
	if err != nil {
		return nil, err
	}
	msg := &envelope.Message{}
	for _, frame := range frames {
		msg.AddBytes(frame)
	}
	return msg, nil
}
