package blockchain

import (
	"encoding/hex"
	"encoding/json"

	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/OdyseeTeam/txdecode/blockchain/script"
	"github.com/OdyseeTeam/txdecode/blockchain/stream"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/sirupsen/logrus"
)

// Document is the display form of a transaction. Field order is the output order.
type Document struct {
	TxID     string           `json:"transaction id"`
	Version  uint32           `json:"version"`
	Inputs   []InputDocument  `json:"inputs"`
	Outputs  []OutputDocument `json:"outputs"`
	LockTime uint32           `json:"locktime"`
}

type InputDocument struct {
	PreviousTxid string   `json:"previous_txid"`
	PreviousVout uint32   `json:"previous_vout"`
	ScriptSig    string   `json:"script_sig"`
	Sequence     uint32   `json:"sequence"`
	Witness      []string `json:"witness"`
}

type OutputDocument struct {
	Amount       float64 `json:"amount"`
	ScriptPubKey string  `json:"script_pubkey"`
	ScriptType   string  `json:"script_type,omitempty"`
	Address      string  `json:"address,omitempty"`
	Data         string  `json:"data,omitempty"`
}

type Options struct {
	// Classify adds script type, address and OP_RETURN data to outputs.
	Classify bool
	Params   *chaincfg.Params
}

func NewDocument(tx model.Transaction, opts Options) (*Document, error) {
	txid, err := stream.TxID(tx)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		TxID:     txid.String(),
		Version:  tx.Version,
		Inputs:   make([]InputDocument, 0, len(tx.Inputs)),
		Outputs:  make([]OutputDocument, 0, len(tx.Outputs)),
		LockTime: tx.LockTime,
	}

	for _, in := range tx.Inputs {
		doc.Inputs = append(doc.Inputs, InputDocument{
			PreviousTxid: in.PrevTxid.String(),
			PreviousVout: in.PrevIndex,
			ScriptSig:    in.ScriptSig.String(),
			Sequence:     in.Sequence,
			Witness:      in.Witness.Hex(),
		})
	}

	for n, out := range tx.Outputs {
		o := OutputDocument{
			Amount:       out.Amount.ToBTC(),
			ScriptPubKey: out.ScriptPubKey.String(),
		}
		if opts.Classify {
			classify(&o, out.ScriptPubKey, opts.Params)
		}
		logrus.Debugf("OUT %d -> %s (%s)", n, o.ScriptType, out.Amount)
		doc.Outputs = append(doc.Outputs, o)
	}

	return doc, nil
}

func classify(o *OutputDocument, pkScript script.Hex, params *chaincfg.Params) {
	b, err := pkScript.Bytes()
	if err != nil {
		logrus.Errorf("%+v", err)
		return
	}
	c := script.Classify(b, params)
	o.ScriptType = c.Type
	o.Address = c.Address
	if len(c.Data) > 0 {
		o.Data = hex.EncodeToString(c.Data)
	}
}

// Marshal renders the document as indented JSON, or on one line if compact.
func (d *Document) Marshal(compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(d)
	}
	return json.MarshalIndent(d, "", "  ")
}
