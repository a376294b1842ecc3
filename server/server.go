package server

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/OdyseeTeam/txdecode/blockchain"
	"github.com/OdyseeTeam/txdecode/blockchain/model"
	"github.com/OdyseeTeam/txdecode/storage"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const maxBodySize = 4 << 20

// New returns the decode service. store may be nil, which disables /raw, /tx and /sql.
func New(store *storage.Store, opts blockchain.Options) http.Handler {
	httpServeMux := http.NewServeMux()
	httpServeMux.Handle("/decode", decode(store, opts))
	if store != nil {
		httpServeMux.Handle("/raw", raw(store))
		httpServeMux.Handle("/tx", record(store))
		httpServeMux.Handle("/sql", query(store))
	}
	return httpServeMux
}

// Start serves on addr until the listener fails.
func Start(addr string, store *storage.Store, opts blockchain.Options) error {
	logrus.Infof("listening on %s", addr)
	return errors.WithStack(http.ListenAndServe(addr, New(store, opts)))
}

func decode(store *storage.Store, opts blockchain.Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawHex, err := hexParam(w, r)
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			writeError(w, status, err)
			return
		}

		tx, rawBytes, err := blockchain.DecodeHex(rawHex)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		doc, err := blockchain.NewDocument(tx, opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		if store != nil {
			_, err = store.Put(tx, rawBytes)
			if err != nil {
				logrus.Errorf("%+v", err)
			}
		}

		writeJSON(w, doc)
	})
}

// hexParam takes the transaction from ?hex=, a form field hex=, or the raw POST body.
// A form body that is bare hex (curl -d <hex>) parses as a single key with no value.
func hexParam(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.Method != http.MethodPost {
		return r.URL.Query().Get("hex"), nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if mt := mediaType(r); mt == formURLEncoded || mt == formMultipart {
		var err error
		if mt == formMultipart {
			err = r.ParseMultipartForm(maxBodySize)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return "", errors.WithStack(err)
		}
		if h := r.Form.Get("hex"); h != "" {
			return h, nil
		}
		if len(r.PostForm) == 1 {
			for k, v := range r.PostForm {
				if len(v) == 1 && v[0] == "" {
					return k, nil
				}
			}
		}
		return "", nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(body) == 0 {
		return r.URL.Query().Get("hex"), nil
	}
	return string(body), nil
}

const (
	formURLEncoded = "application/x-www-form-urlencoded"
	formMultipart  = "multipart/form-data"
)

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func raw(store *storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		txid, err := model.TxidFromString(r.FormValue("txid"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		b, err := store.Raw(txid)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(hex.EncodeToString(b)))
	})
}

func record(store *storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		txid, err := model.TxidFromString(r.FormValue("txid"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		rec, err := store.Get(txid)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, rec)
	})
}

func query(store *storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results, err := store.Query(r.FormValue("query"))
		if errors.Is(err, storage.ErrReadOnly) {
			writeError(w, http.StatusBadRequest, err)
			return
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, results)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logrus.Debugf("%d: %+v", status, err)
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}
