package stream

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a field needs.
	ErrTruncated = errors.New("IO error: unexpected end of input")
	// ErrParseFailed marks content that could be read but makes no sense.
	ErrParseFailed = errors.New("parse failed")
	// ErrUnsupportedSegwitFlag marks a SegwitFlagError.
	ErrUnsupportedSegwitFlag = errors.New("unsupported segwit flag")
	// ErrHexDecode marks hex text that is not valid hex.
	ErrHexDecode = errors.New("hex decode error")
)

// SegwitFlagError is returned when the segwit marker is followed by a flag other than 1.
type SegwitFlagError struct {
	Flag uint8
}

func (e *SegwitFlagError) Error() string {
	return fmt.Sprintf("unsupported segwit version: %d", e.Flag)
}

func unsupportedSegwitFlag(flag uint8) error {
	return errors.Mark(&SegwitFlagError{Flag: flag}, ErrUnsupportedSegwitFlag)
}

func parseFailed(reason string) error {
	return errors.Mark(errors.Newf("parse failed: %s", reason), ErrParseFailed)
}

func truncated(what string, want uint64, have int) error {
	return errors.Wrapf(ErrTruncated, "reading %s: need %d bytes, %d left", what, want, have)
}

// HexDecodeError marks err as a hex decoding failure.
func HexDecodeError(err error) error {
	return errors.Mark(errors.Newf("Hex decode error: %v", err), ErrHexDecode)
}
