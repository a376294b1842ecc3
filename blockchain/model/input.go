package model

import "github.com/OdyseeTeam/txdecode/blockchain/script"

const coinbasePrevIndex = 0xffffffff

type TxIn struct {
	PrevTxid  Txid
	PrevIndex uint32
	ScriptSig script.Hex
	Sequence  uint32
	Witness   Witness
}

// WithWitness returns a copy of the input carrying w. The receiver is left untouched.
func (in TxIn) WithWitness(w Witness) TxIn {
	out := in
	out.Witness = append(Witness(nil), w...)
	return out
}

func (in TxIn) IsCoinbase() bool {
	if in.PrevIndex != coinbasePrevIndex {
		return false
	}
	for _, b := range in.PrevTxid {
		if b != 0 {
			return false
		}
	}
	return true
}
