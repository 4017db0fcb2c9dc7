// Package tracker keeps the ingestion ledger: which resume files have been
// processed, keyed by content checksum, and which have failed with what
// error. The ledger survives restarts so re-running ingestion skips files
// whose content has not changed.
package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	processedPrefix = "processed/"
	failedPrefix    = "failed/"
)

// Entry records the outcome of processing one file.
type Entry struct {
	Filename  string    `json:"filename"`
	Checksum  string    `json:"checksum"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Status summarizes the ledger.
type Status struct {
	Processed []Entry `json:"processed"`
	Failed    []Entry `json:"failed"`
}

// Tracker is a Badger-backed ingestion ledger.
type Tracker struct {
	db *badger.DB
}

// Open opens (or creates) the ledger at the given directory.
func Open(path string) (*Tracker, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker ledger: %w", err)
	}
	return &Tracker{db: db}, nil
}

// IsProcessed reports whether a file with this checksum has already been
// ingested successfully.
func (t *Tracker) IsProcessed(checksum string) (bool, error) {
	var found bool
	err := t.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(processedPrefix + checksum))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// MarkProcessed records a successful ingest and clears any failure tombstone
// left by earlier attempts on the same content.
func (t *Tracker) MarkProcessed(filename, checksum string) error {
	entry := Entry{Filename: filename, Checksum: checksum, Timestamp: time.Now().UTC()}
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(processedPrefix+checksum), value); err != nil {
			return err
		}
		err := txn.Delete([]byte(failedPrefix + checksum))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// MarkFailed records a failed ingest with the final error message.
func (t *Tracker) MarkFailed(filename, checksum, message string) error {
	entry := Entry{Filename: filename, Checksum: checksum, Error: message, Timestamp: time.Now().UTC()}
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(failedPrefix+checksum), value)
	})
}

// Status lists all processed and failed entries.
func (t *Tracker) Status() (*Status, error) {
	status := &Status{}
	err := t.db.View(func(txn *badger.Txn) error {
		var err error
		status.Processed, err = collect(txn, processedPrefix)
		if err != nil {
			return err
		}
		status.Failed, err = collect(txn, failedPrefix)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Close closes the underlying database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

func collect(txn *badger.Txn, prefix string) ([]Entry, error) {
	var entries []Entry
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var entry Entry
			if err := json.Unmarshal(val, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}
