package script

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	opReturn    = 0x6a // OP_RETURN = 106
	opPushData1 = 0x4c // OP_PUSHDATA1 = 76
)

// Class describes a script-pubkey for display.
type Class struct {
	Type    string
	Address string
	Data    []byte // OP_RETURN payload, if any
}

// Classify never fails. Unparseable scripts come back as nonstandard.
func Classify(pkScript []byte, params *chaincfg.Params) Class {
	if params == nil {
		params = &chaincfg.MainNetParams
	}

	scriptClass, addresses, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil {
		logrus.Debugf("could not classify script %x: %v", pkScript, err)
		return Class{Type: txscript.NonStandardTy.String()}
	}

	c := Class{Type: scriptClass.String()}
	if len(addresses) == 1 {
		c.Address = addresses[0].EncodeAddress()
	}

	if scriptClass == txscript.NullDataTy {
		data, err := ParseDataScript(pkScript)
		if err != nil {
			logrus.Debugf("null data script without payload: %v", err)
		} else {
			c.Data = data
		}
	}
	return c
}

// ParseDataScript returns the bytes pushed after OP_RETURN
func ParseDataScript(script []byte) ([]byte, error) {
	// OP_RETURN (bytes) DATA
	// OP_RETURN OP_PUSHDATA1 (bytes) DATA
	if len(script) <= 1 {
		return nil, errors.New("there is no script to parse")
	}
	if script[0] != opReturn {
		return nil, errors.New("the first byte of script must be an OP_RETURN to qualify as un-spendable data")
	}

	start := 2
	dataBytesToRead := int(script[1])
	if script[1] == opPushData1 {
		if len(script) < 3 {
			return nil, errors.New("OP_PUSHDATA1 without a length byte")
		}
		start = 3
		dataBytesToRead = int(script[2])
	} else if dataBytesToRead > opPushData1 {
		return nil, errors.Newf("unsupported push opcode 0x%02x", script[1])
	}

	if len(script)-start != dataBytesToRead {
		return nil, errors.Newf("supposed to have %d bytes to read but the script is %d bytes", dataBytesToRead, len(script))
	}
	return script[start:], nil
}
