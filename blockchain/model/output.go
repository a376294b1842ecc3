package model

import "github.com/OdyseeTeam/txdecode/blockchain/script"

type TxOut struct {
	Amount       Amount
	ScriptPubKey script.Hex
}
