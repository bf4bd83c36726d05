// Package storage persists transaction records in a pebble-backed archive.
// Records are keyed by transaction id and stored in the same self-framed
// binary encoding the codec package writes to files, so an archived record
// and a record in a binary file are byte-identical.
package storage

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ypbank/txfile/pkg/codec"
	"github.com/ypbank/txfile/pkg/record"
)

const (
	txKeyPrefix     = "tx:"
	importKeyPrefix = "import:"
)

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = fmt.Errorf("record not found")

// Archive is a pebble-backed store of transaction records.
type Archive struct {
	db    *pebble.DB
	codec codec.BinaryCodec
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

func txKey(id uint64) []byte {
	key := make([]byte, len(txKeyPrefix)+8)
	copy(key, txKeyPrefix)
	binary.BigEndian.PutUint64(key[len(txKeyPrefix):], id)
	return key
}

// Put stores one record, replacing any previous record with the same id.
func (a *Archive) Put(rec *record.Record) error {
	var buf bytes.Buffer
	if err := a.codec.WriteRecord(&buf, rec); err != nil {
		return err
	}
	return a.db.Set(txKey(rec.ID), buf.Bytes(), pebble.Sync)
}

// Get fetches one record by transaction id.
func (a *Archive) Get(id uint64) (*record.Record, error) {
	data, closer, err := a.db.Get(txKey(id))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	return a.codec.ReadRecord(bufio.NewReader(bytes.NewReader(data)))
}

// Delete removes a record by transaction id.
func (a *Archive) Delete(id uint64) error {
	return a.db.Delete(txKey(id), pebble.Sync)
}

// Import stores a batch of records and returns a generated batch id under
// which the import is recorded.
func (a *Archive) Import(records []record.Record) (string, error) {
	batch := a.db.NewBatch()
	defer batch.Close()

	for i := range records {
		var buf bytes.Buffer
		if err := a.codec.WriteRecord(&buf, &records[i]); err != nil {
			return "", err
		}
		if err := batch.Set(txKey(records[i].ID), buf.Bytes(), nil); err != nil {
			return "", err
		}
	}

	batchID := ksuid.New().String()
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(len(records)))
	if err := batch.Set([]byte(importKeyPrefix+batchID), count[:], nil); err != nil {
		return "", err
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return "", err
	}
	return batchID, nil
}

// ImportFrom decodes an entire stream in the given format and imports it.
func (a *Archive) ImportFrom(r io.Reader, f record.Format) (int, string, error) {
	records, err := codec.ReadAll(r, f)
	if err != nil {
		return 0, "", err
	}
	batchID, err := a.Import(records)
	if err != nil {
		return 0, "", err
	}
	return len(records), batchID, nil
}

// List returns every archived record in ascending transaction id order.
func (a *Archive) List() ([]record.Record, error) {
	// "tx;" is the immediate successor of the "tx:" prefix, so the bounds
	// cover every possible 8-byte id suffix.
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(txKeyPrefix),
		UpperBound: []byte("tx;"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var records []record.Record
	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := a.codec.ReadRecord(bufio.NewReader(bytes.NewReader(iter.Value())))
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// ExportTo writes every archived record to w in the given format, in
// ascending transaction id order.
func (a *Archive) ExportTo(w io.Writer, f record.Format) error {
	records, err := a.List()
	if err != nil {
		return err
	}
	return codec.WriteAll(w, f, records)
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
