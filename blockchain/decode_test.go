package blockchain

import (
	"testing"

	"github.com/OdyseeTeam/txdecode/blockchain/stream"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawTransactionHex = "0100000001d4f92ee4e8ad1a99c4a76f562ddc2345191a76d6c0db7e766859e01d3bedfe0a000000006b483045022100cab4dbf51074f2ed4255824fe7a4723217415fbe4209561e031ca54400f5243c022034960b9f49685952ce88971288f057e1394ea591982d5df9bc6ede95be35f4e3012103a3deb6df91d41e4d062b429004a31f9e070182b8e548c43d165e863a08119df9ffffffff0158020000000000001976a9142b1da6ec2d055aa03cad386841a4b4dc62acd5b688ac00000000"

func TestDecodeHex(t *testing.T) {
	tx, raw, err := DecodeHex(rawTransactionHex)
	require.NoError(t, err)
	assert.Len(t, raw, len(rawTransactionHex)/2)
	assert.Len(t, tx.Inputs, 1)
	assert.Len(t, tx.Outputs, 1)
	assert.False(t, tx.IsSegWit())
}

func TestDecodeHexInvalid(t *testing.T) {
	for _, s := range []string{"zz", "010", "01000000 01"} {
		_, _, err := DecodeHex(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, stream.ErrHexDecode), s)
		assert.Contains(t, err.Error(), "Hex decode error")
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	tx, _, err := DecodeHex(rawTransactionHex + "deadbeef")
	require.NoError(t, err)
	assert.EqualValues(t, 0, tx.LockTime)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(nil)
	assert.True(t, errors.Is(err, stream.ErrTruncated))
}
