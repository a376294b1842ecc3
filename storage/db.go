package storage

import (
	"path/filepath"
	"strings"

	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/OdyseeTeam/txdecode/blockchain/stream"
	"github.com/cockroachdb/errors"
	"github.com/genjidb/genji"
	"github.com/genjidb/genji/document"
	"github.com/genjidb/genji/types"
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

var (
	// ErrNotFound is returned when no transaction is stored under a txid.
	ErrNotFound = errors.New("transaction not found")
	// ErrReadOnly is returned by Query for anything but a single SELECT.
	ErrReadOnly = errors.New("only a single SELECT statement is allowed")
)

// Record is the queryable summary of a decoded transaction.
type Record struct {
	Txid        string `genji:"txid" json:"txid"`
	Version     uint32 `genji:"version" json:"version"`
	InputCount  int    `genji:"input_count" json:"input_count"`
	OutputCount int    `genji:"output_count" json:"output_count"`
	LockTime    uint32 `genji:"locktime" json:"locktime"`
	SegWit      bool   `genji:"segwit" json:"segwit"`
	Size        int    `genji:"size" json:"size"`
}

// Store keeps summaries in genji and raw transactions in leveldb, keyed by internal txid bytes.
type Store struct {
	docs *genji.DB
	raw  *leveldb.DB
}

// Open opens or creates a store under dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	var (
		docs *genji.DB
		raw  *leveldb.DB
		err  error
	)

	if dir == "" {
		docs, err = genji.Open(":memory:")
		if err != nil {
			return nil, errors.Wrap(err, "opening document store")
		}
		raw, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		docs, err = genji.Open(filepath.Join(dir, "documents"))
		if err != nil {
			return nil, errors.Wrap(err, "opening document store")
		}
		raw, err = leveldb.OpenFile(filepath.Join(dir, "raw"), nil)
	}
	if err != nil {
		docs.Close()
		return nil, errors.Wrap(err, "opening raw store")
	}

	err = docs.Exec("CREATE TABLE IF NOT EXISTS transactions")
	if err != nil {
		docs.Close()
		raw.Close()
		return nil, errors.Wrap(err, "creating transactions table")
	}

	return &Store{docs: docs, raw: raw}, nil
}

func (s *Store) Close() error {
	errDocs := s.docs.Close()
	errRaw := s.raw.Close()
	if errDocs != nil {
		return errors.Wrap(errDocs, "closing document store")
	}
	return errors.Wrap(errRaw, "closing raw store")
}

// Put stores tx and the raw bytes it was decoded from. Storing the same txid twice replaces it.
func (s *Store) Put(tx model.Transaction, raw []byte) (model.Txid, error) {
	txid, err := stream.TxID(tx)
	if err != nil {
		return txid, err
	}

	rec := Record{
		Txid:        txid.String(),
		Version:     tx.Version,
		InputCount:  len(tx.Inputs),
		OutputCount: len(tx.Outputs),
		LockTime:    tx.LockTime,
		SegWit:      tx.IsSegWit(),
		Size:        len(raw),
	}

	err = s.docs.Exec("DELETE FROM transactions WHERE txid = ?", rec.Txid)
	if err != nil {
		return txid, errors.Wrap(err, "replacing transaction")
	}
	err = s.docs.Exec("INSERT INTO transactions VALUES ?", &rec)
	if err != nil {
		return txid, errors.Wrap(err, "inserting transaction")
	}

	err = s.raw.Put(txid[:], raw, nil)
	if err != nil {
		return txid, errors.Wrap(err, "storing raw transaction")
	}

	logrus.Debugf("stored tx %s (%d bytes)", rec.Txid, rec.Size)
	return txid, nil
}

// Raw returns the bytes stored for txid.
func (s *Store) Raw(txid model.Txid) ([]byte, error) {
	b, err := s.raw.Get(txid[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", txid)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Get returns the summary stored for txid.
func (s *Store) Get(txid model.Txid) (*Record, error) {
	res, err := s.docs.Query("SELECT * FROM transactions WHERE txid = ?", txid.String())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer res.Close()

	var rec *Record
	err = res.Iterate(func(d types.Document) error {
		rec = &Record{}
		return document.StructScan(d, rec)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if rec == nil {
		return nil, errors.Wrapf(ErrNotFound, "%s", txid)
	}
	return rec, nil
}

// Query runs a single SELECT statement inside a read-only transaction and
// returns each row as a map.
func (s *Store) Query(q string) ([]map[string]interface{}, error) {
	q, err := singleSelect(q)
	if err != nil {
		return nil, err
	}

	tx, err := s.docs.Begin(false)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer tx.Rollback()

	res, err := tx.Query(q)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer res.Close()

	var results = make([]map[string]interface{}, 0)
	err = res.Iterate(func(d types.Document) error {
		m := make(map[string]interface{})
		err := document.MapScan(d, &m)
		if err != nil {
			return errors.WithStack(err)
		}
		results = append(results, m)
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return results, nil
}

// singleSelect trims q and its trailing semicolon, and rejects it unless it is one SELECT.
func singleSelect(q string) (string, error) {
	q = strings.TrimSpace(q)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if strings.Contains(q, ";") {
		return "", errors.Wrapf(ErrReadOnly, "%q", q)
	}
	if len(q) < len("SELECT") || !strings.EqualFold(q[:len("SELECT")], "SELECT") {
		return "", errors.Wrapf(ErrReadOnly, "%q", q)
	}
	return q, nil
}
