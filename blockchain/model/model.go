package model

import (
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Txid is a double-sha256 digest in the byte order the hash function produced it.
// Only String reverses it.
type Txid chainhash.Hash

const TxidSize = chainhash.HashSize

// NewTxid hashes canonical transaction bytes into a Txid.
func NewTxid(canonical []byte) Txid {
	return Txid(chainhash.DoubleHashH(canonical))
}

// TxidFromString parses the reversed display form.
func TxidFromString(s string) (Txid, error) {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return Txid{}, err
	}
	return Txid(*h), nil
}

func (t Txid) String() string { return chainhash.Hash(t).String() }
func (t Txid) Bytes() []byte  { return append([]byte(nil), t[:]...) }

func (t Txid) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Witness is the stack of byte strings attached to one input.
type Witness [][]byte

func (w Witness) IsEmpty() bool { return len(w) == 0 }

// Hex returns the items hex encoded, never nil.
func (w Witness) Hex() []string {
	items := make([]string, 0, len(w))
	for _, item := range w {
		items = append(items, hex.EncodeToString(item))
	}
	return items
}

// Amount is an exact satoshi count.
type Amount uint64

// ToBTC is for display only. The conversion is lossy.
func (a Amount) ToBTC() float64 {
	return float64(a) / btcutil.SatoshiPerBitcoin
}

func (a Amount) String() string {
	if a > math.MaxInt64 {
		return "overflow"
	}
	return btcutil.Amount(a).String()
}
