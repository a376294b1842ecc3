package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxidDisplayIsReversed(t *testing.T) {
	var id Txid
	for i := range id {
		id[i] = byte(i)
	}
	assert.Equal(t, "1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100", id.String())
	assert.EqualValues(t, 0, id.Bytes()[0])

	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100"`, string(b))

	parsed, err := TxidFromString(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTxidFromStringInvalid(t *testing.T) {
	_, err := TxidFromString("not hex")
	assert.Error(t, err)
}

func TestAmountToBTC(t *testing.T) {
	assert.Equal(t, 0.000006, Amount(600).ToBTC())
	assert.Equal(t, 1.0, Amount(100000000).ToBTC())
	assert.Equal(t, 21e6, Amount(2100000000000000).ToBTC())
	assert.Equal(t, "0.00000600 BTC", Amount(600).String())
}

func TestWithWitnessDoesNotMutate(t *testing.T) {
	in := TxIn{PrevIndex: 3, Sequence: 7}
	w := Witness{{0x01, 0x02}}

	out := in.WithWitness(w)
	assert.True(t, in.Witness.IsEmpty())
	assert.Equal(t, []string{"0102"}, out.Witness.Hex())
	assert.Equal(t, in.PrevIndex, out.PrevIndex)

	w[0] = []byte{0xff}
	assert.Equal(t, []string{"0102"}, out.Witness.Hex())
}

func TestIsSegWit(t *testing.T) {
	tx := Transaction{Inputs: []TxIn{{}, {}}}
	assert.False(t, tx.IsSegWit())

	tx.Inputs[1] = tx.Inputs[1].WithWitness(Witness{{}})
	assert.True(t, tx.IsSegWit())
}

func TestIsCoinbase(t *testing.T) {
	assert.True(t, TxIn{PrevIndex: 0xffffffff}.IsCoinbase())
	assert.False(t, TxIn{PrevIndex: 0}.IsCoinbase())

	in := TxIn{PrevIndex: 0xffffffff}
	in.PrevTxid[5] = 1
	assert.False(t, in.IsCoinbase())
}

func TestWitnessHexNeverNil(t *testing.T) {
	var w Witness
	assert.NotNil(t, w.Hex())
	assert.Len(t, w.Hex(), 0)
}
