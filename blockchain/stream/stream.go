package stream

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// Stream is a forward-only cursor over an in-memory transaction.
type Stream struct {
	data   *bytes.Reader
	offset int64
}

func New(data []byte) *Stream {
	return &Stream{data: bytes.NewReader(data)}
}

// Offset is the number of bytes consumed so far.
func (s *Stream) Offset() int64 {
	return s.offset
}

// Remaining is the number of bytes not yet consumed.
func (s *Stream) Remaining() int {
	return s.data.Len()
}

func (s *Stream) Read(p []byte) (n int, err error) {
	n, err = s.data.Read(p)
	s.offset += int64(n)
	return n, err
}

// readBytes reads exactly toRead bytes. Lengths larger than what is left fail
// before anything is allocated.
func (s *Stream) readBytes(toRead uint64, what string) ([]byte, error) {
	if toRead > uint64(s.Remaining()) {
		return nil, truncated(what, toRead, s.Remaining())
	}
	buf := make([]byte, toRead)
	_, err := io.ReadFull(s, buf)
	if err != nil {
		return nil, errors.Wrapf(ErrTruncated, "reading %s: %v", what, err)
	}
	return buf, nil
}

func (s *Stream) readUint8(what string) (uint8, error) {
	buf, err := s.readBytes(1, what)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *Stream) readUint16(what string) (uint16, error) {
	buf, err := s.readBytes(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (s *Stream) readUint32(what string) (uint32, error) {
	buf, err := s.readBytes(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (s *Stream) readUint64(what string) (uint64, error) {
	buf, err := s.readBytes(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func write(w io.Writer, b []byte) (int, error) {
	n, err := w.Write(b)
	if err != nil {
		return n, errors.Wrap(err, "write")
	}
	return n, nil
}

func writeUint8(w io.Writer, v uint8) (int, error) {
	return write(w, []byte{v})
}

func writeUint16(w io.Writer, v uint16) (int, error) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return write(w, buf[:])
}

func writeUint32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return write(w, buf[:])
}

func writeUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return write(w, buf[:])
}
