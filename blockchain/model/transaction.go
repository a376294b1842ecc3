package model

type Transaction struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// IsSegWit reports whether any input carries witness data.
func (t Transaction) IsSegWit() bool {
	for _, in := range t.Inputs {
		if !in.Witness.IsEmpty() {
			return true
		}
	}
	return false
}
