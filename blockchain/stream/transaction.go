package stream

import (
	"io"

	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/sirupsen/logrus"
)

// smallest possible encodings, used to cap preallocation from untrusted counts
const (
	minTxInSize  = model.TxidSize + 4 + 1 + 4
	minTxOutSize = 8 + 1
)

const segwitFlag = 0x01

type transactionCodec struct{}

// Decode reads one transaction. A zero input count is the segwit marker and must
// be followed by flag 0x01. In that case each input's witness stack comes after
// the outputs and is attached to its input before the transaction is returned.
//
//	legacy: [version][txins][txouts][locktime]
//	segwit: [version][marker][flag][txins][txouts][witness][locktime]
func (transactionCodec) Decode(s *Stream) (model.Transaction, error) {
	var tx model.Transaction
	var err error

	tx.Version, err = s.readUint32("version")
	if err != nil {
		return model.Transaction{}, err
	}

	inputCountOrMarker, err := s.ReadCompactSize()
	if err != nil {
		return model.Transaction{}, err
	}

	if inputCountOrMarker != 0 {
		tx.Inputs, err = decodeInputs(s, inputCountOrMarker)
		if err != nil {
			return model.Transaction{}, err
		}
		tx.Outputs, err = decodeOutputs(s)
		if err != nil {
			return model.Transaction{}, err
		}
		tx.LockTime, err = s.readUint32("locktime")
		if err != nil {
			return model.Transaction{}, err
		}
		return tx, nil
	}

	// if 0 inputs, then what we actually read was the marker
	flag, err := s.readUint8("segwit flag")
	if err != nil {
		return model.Transaction{}, err
	}
	if flag != segwitFlag {
		return model.Transaction{}, unsupportedSegwitFlag(flag)
	}
	logrus.Debugf("segwit marker found at offset %d", s.Offset()-2)

	inputCount, err := s.ReadCompactSize()
	if err != nil {
		return model.Transaction{}, err
	}
	inputs, err := decodeInputs(s, inputCount)
	if err != nil {
		return model.Transaction{}, err
	}
	tx.Outputs, err = decodeOutputs(s)
	if err != nil {
		return model.Transaction{}, err
	}

	tx.Inputs = make([]model.TxIn, 0, len(inputs))
	hasWitness := false
	for _, in := range inputs {
		witness, err := Witness.Decode(s)
		if err != nil {
			return model.Transaction{}, err
		}
		hasWitness = hasWitness || !witness.IsEmpty()
		tx.Inputs = append(tx.Inputs, in.WithWitness(witness))
	}
	if len(tx.Inputs) > 0 && !hasWitness {
		return model.Transaction{}, parseFailed("witness flag set but no witness data present")
	}

	tx.LockTime, err = s.readUint32("locktime")
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// Encode writes the canonical form. Witness data is never written.
func (transactionCodec) Encode(w io.Writer, tx model.Transaction) (int, error) {
	steps := []func() (int, error){
		func() (int, error) { return writeUint32(w, tx.Version) },
		func() (int, error) { return WriteCompactSize(w, uint64(len(tx.Inputs))) },
	}
	for _, in := range tx.Inputs {
		in := in
		steps = append(steps, func() (int, error) { return TxIn.Encode(w, in) })
	}
	steps = append(steps, func() (int, error) { return WriteCompactSize(w, uint64(len(tx.Outputs))) })
	for _, out := range tx.Outputs {
		out := out
		steps = append(steps, func() (int, error) { return TxOut.Encode(w, out) })
	}
	steps = append(steps, func() (int, error) { return writeUint32(w, tx.LockTime) })
	return encodeAll(steps...)
}

func decodeInputs(s *Stream, count uint64) ([]model.TxIn, error) {
	inputs := make([]model.TxIn, 0, capacity(s, count, minTxInSize))
	for i := uint64(0); i < count; i++ {
		in, err := TxIn.Decode(s)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func decodeOutputs(s *Stream) ([]model.TxOut, error) {
	count, err := s.ReadCompactSize()
	if err != nil {
		return nil, err
	}
	outputs := make([]model.TxOut, 0, capacity(s, count, minTxOutSize))
	for i := uint64(0); i < count; i++ {
		out, err := TxOut.Decode(s)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// capacity bounds a declared element count by what the remaining bytes could hold.
func capacity(s *Stream, count uint64, minSize int) int {
	fit := uint64(s.Remaining() / minSize)
	if count < fit {
		return int(count)
	}
	return int(fit)
}
