package script

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	h := ToHex([]byte{0xde, 0xad})
	assert.Equal(t, "dead", h.String())
	assert.Equal(t, 2, h.Len())

	b, err := h.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)

	_, err = Hex("0g").Bytes()
	assert.Error(t, err)
}

func TestClassifyPubKeyHash(t *testing.T) {
	pkScript, err := hex.DecodeString("76a9142b1da6ec2d055aa03cad386841a4b4dc62acd5b688ac")
	require.NoError(t, err)

	c := Classify(pkScript, &chaincfg.MainNetParams)
	assert.Equal(t, "pubkeyhash", c.Type)
	assert.Equal(t, "14vyaWW7PHdhKwtsgQJSPzgXwdi97tGJFz", c.Address)
	assert.Empty(t, c.Data)
}

func TestClassifyNilParamsIsMainnet(t *testing.T) {
	pkScript, err := hex.DecodeString("76a9142b1da6ec2d055aa03cad386841a4b4dc62acd5b688ac")
	require.NoError(t, err)
	assert.Equal(t, "14vyaWW7PHdhKwtsgQJSPzgXwdi97tGJFz", Classify(pkScript, nil).Address)
}

func TestClassifyNonStandard(t *testing.T) {
	c := Classify([]byte{0x51, 0x52}, &chaincfg.MainNetParams)
	assert.Equal(t, "nonstandard", c.Type)
	assert.Empty(t, c.Address)
}

func TestClassifyNullData(t *testing.T) {
	hexStr := "6a17500a14b5fb292f0ccb678a0c393b5ab47c522d1a9f4bfc"
	pkScript, err := hex.DecodeString(hexStr)
	require.NoError(t, err)

	c := Classify(pkScript, &chaincfg.MainNetParams)
	assert.Equal(t, "nulldata", c.Type)
	assert.Equal(t, "500a14b5fb292f0ccb678a0c393b5ab47c522d1a9f4bfc", hex.EncodeToString(c.Data))
}

func TestParseDataScript(t *testing.T) {
	tests := []struct {
		script string
		data   string
		ok     bool
	}{
		{"6a0401020304", "01020304", true},
		{"6a4c0401020304", "01020304", true},
		{"6a00", "", true},
		{"6a", "", false},
		{"76a9", "", false},
		{"6a0501020304", "", false},
		{"6a4d0400", "", false},
	}

	for _, tt := range tests {
		b, _ := hex.DecodeString(tt.script)
		data, err := ParseDataScript(b)
		if !tt.ok {
			assert.Error(t, err, tt.script)
			continue
		}
		require.NoError(t, err, tt.script)
		assert.Equal(t, tt.data, hex.EncodeToString(data), tt.script)
	}
}
