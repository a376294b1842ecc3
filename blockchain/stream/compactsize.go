package stream

import "io"

// CompactSize discriminants. Anything below compactSize16 is the value itself.
const (
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

// ReadCompactSize decodes a CompactSize. All four widths are accepted whatever
// the value, so a non-minimal encoding still yields its integer.
func (s *Stream) ReadCompactSize() (uint64, error) {
	size, err := s.readUint8("compact size")
	if err != nil {
		return 0, err
	}

	switch size {
	case compactSize64:
		return s.readUint64("compact size")
	case compactSize32:
		v, err := s.readUint32("compact size")
		return uint64(v), err
	case compactSize16:
		v, err := s.readUint16("compact size")
		return uint64(v), err
	default:
		return uint64(size), nil
	}
}

// CompactSizeLen is the number of bytes WriteCompactSize uses for v.
func CompactSizeLen(v uint64) int {
	switch {
	case v < compactSize16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteCompactSize writes v in the narrowest form and returns the bytes written.
func WriteCompactSize(w io.Writer, v uint64) (int, error) {
	switch CompactSizeLen(v) {
	case 1:
		return writeUint8(w, uint8(v))
	case 3:
		return writeWithPrefix(w, compactSize16, func() (int, error) { return writeUint16(w, uint16(v)) })
	case 5:
		return writeWithPrefix(w, compactSize32, func() (int, error) { return writeUint32(w, uint32(v)) })
	default:
		return writeWithPrefix(w, compactSize64, func() (int, error) { return writeUint64(w, v) })
	}
}

func writeWithPrefix(w io.Writer, prefix uint8, body func() (int, error)) (int, error) {
	n, err := writeUint8(w, prefix)
	if err != nil {
		return n, err
	}
	m, err := body()
	return n + m, err
}
