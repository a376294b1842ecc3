package stream

import (
	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/valyala/bytebufferpool"
)

// Canonical returns the witness-free encoding of tx.
func Canonical(tx model.Transaction) ([]byte, error) {
	var canonical []byte
	err := withCanonical(tx, func(b []byte) {
		canonical = append([]byte(nil), b...)
	})
	return canonical, err
}

// TxID is the double-sha256 of the canonical encoding.
// txid: doubleSHA([nVersion][txins][txouts][nLockTime])
func TxID(tx model.Transaction) (model.Txid, error) {
	var txid model.Txid
	err := withCanonical(tx, func(b []byte) {
		txid = model.NewTxid(b)
	})
	return txid, err
}

// withCanonical encodes tx into a pooled buffer and hands the bytes to fn.
// fn must not keep b.
func withCanonical(tx model.Transaction, fn func(b []byte)) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, err := Transaction.Encode(buf, tx)
	if err != nil {
		return err
	}
	fn(buf.Bytes())
	return nil
}
