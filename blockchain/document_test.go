package blockchain

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedDocument = `{
  "transaction id": "7ea6fe9c866db77005ae8f25e2a94bd6d98c2d2e863c711de1b77a6879b971a7",
  "version": 1,
  "inputs": [
    {
      "previous_txid": "0afeed3b1de05968767edbc0d6761a194523dc2d566fa7c4991aade8e42ef9d4",
      "previous_vout": 0,
      "script_sig": "483045022100cab4dbf51074f2ed4255824fe7a4723217415fbe4209561e031ca54400f5243c022034960b9f49685952ce88971288f057e1394ea591982d5df9bc6ede95be35f4e3012103a3deb6df91d41e4d062b429004a31f9e070182b8e548c43d165e863a08119df9",
      "sequence": 4294967295,
      "witness": []
    }
  ],
  "outputs": [
    {
      "amount": 0.000006,
      "script_pubkey": "76a9142b1da6ec2d055aa03cad386841a4b4dc62acd5b688ac"
    }
  ],
  "locktime": 0
}`

func TestDocument(t *testing.T) {
	tx, _, err := DecodeHex(rawTransactionHex)
	require.NoError(t, err)

	doc, err := NewDocument(tx, Options{})
	require.NoError(t, err)

	b, err := doc.Marshal(false)
	require.NoError(t, err)
	assert.JSONEq(t, expectedDocument, string(b))

	// field order is part of the output
	keys := []string{`"transaction id"`, `"version"`, `"inputs"`, `"outputs"`, `"locktime"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(string(b), k)
		require.Greater(t, i, last, k)
		last = i
	}
}

func TestDocumentCompact(t *testing.T) {
	tx, _, err := DecodeHex(rawTransactionHex)
	require.NoError(t, err)
	doc, err := NewDocument(tx, Options{})
	require.NoError(t, err)

	b, err := doc.Marshal(true)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "\n")
	assert.JSONEq(t, expectedDocument, string(b))
}

func TestDocumentClassify(t *testing.T) {
	tx, _, err := DecodeHex(rawTransactionHex)
	require.NoError(t, err)

	doc, err := NewDocument(tx, Options{Classify: true, Params: &chaincfg.MainNetParams})
	require.NoError(t, err)
	require.Len(t, doc.Outputs, 1)
	assert.Equal(t, "pubkeyhash", doc.Outputs[0].ScriptType)
	assert.Equal(t, "14vyaWW7PHdhKwtsgQJSPzgXwdi97tGJFz", doc.Outputs[0].Address)
	assert.Empty(t, doc.Outputs[0].Data)
}

func TestDocumentSegwitWitness(t *testing.T) {
	tx, _, err := DecodeHex("02000000000101000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f0100000000feffffff01a0860100000000001600146465666768696a6b6c6d6e6f7071727374757677020830440220001122330402aabbcc00000000")
	require.NoError(t, err)

	doc, err := NewDocument(tx, Options{})
	require.NoError(t, err)
	assert.Equal(t, "d3e6ebaf66f792680d1007e412a00ec88ca85f893bac7b9be2fcddbc04b415ff", doc.TxID)
	assert.Equal(t, "1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100", doc.Inputs[0].PreviousTxid)
	assert.Equal(t, []string{"3044022000112233", "02aabbcc"}, doc.Inputs[0].Witness)
	assert.Equal(t, 0.001, doc.Outputs[0].Amount)
}
