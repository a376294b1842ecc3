package blockchain

import (
	"encoding/hex"
	"strings"

	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/OdyseeTeam/txdecode/blockchain/stream"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

// DecodeHex hex-decodes a raw transaction and decodes it.
func DecodeHex(rawHex string) (model.Transaction, []byte, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(rawHex))
	if err != nil {
		return model.Transaction{}, nil, stream.HexDecodeError(err)
	}
	tx, err := Decode(raw)
	if err != nil {
		return model.Transaction{}, nil, err
	}
	return tx, raw, nil
}

// Decode parses one transaction from raw. Bytes after the locktime are ignored.
func Decode(raw []byte) (model.Transaction, error) {
	s := stream.New(raw)
	tx, err := stream.Transaction.Decode(s)
	if err != nil {
		logrus.Debugf("decode failed at offset %d: %+v", s.Offset(), err)
		return model.Transaction{}, err
	}

	if s.Remaining() > 0 {
		logrus.Debugf("ignoring %d trailing bytes after locktime", s.Remaining())
	}
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Trace(spew.Sdump(tx))
	}
	return tx, nil
}
