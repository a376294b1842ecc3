package script

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

// Hex is an opaque script kept as hex text. It is never interpreted.
type Hex string

func ToHex(b []byte) Hex {
	return Hex(hex.EncodeToString(b))
}

func (h Hex) String() string {
	return string(h)
}

// Bytes decodes the hex text back to raw script bytes.
func (h Hex) Bytes() ([]byte, error) {
	b, err := hex.DecodeString(string(h))
	if err != nil {
		return nil, errors.Wrapf(err, "script %q", h)
	}
	return b, nil
}

// Len is the script length in bytes.
func (h Hex) Len() int {
	return len(h) / 2
}
