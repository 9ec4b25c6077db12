// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/estatenet/estated/fault"
)

// Transaction - one serialisable unit of world state access
type Transaction struct {
	database  *Database
	readOnly  bool
	finished  bool
	snapshot  *leveldb.Snapshot
	batch     *leveldb.Batch
	cache     Cache
	iterators []*RecordIterator
}

func newTransaction(database *Database, snapshot *leveldb.Snapshot, readOnly bool) *Transaction {
	return &Transaction{
		database: database,
		readOnly: readOnly,
		snapshot: snapshot,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

// ReadOnly - true if writes are refused
func (t *Transaction) ReadOnly() bool {
	return t.readOnly
}

// Get - read a value, pending writes first then the snapshot
//
// returns nil, nil if the key is absent
func (t *Transaction) Get(key string) ([]byte, error) {
	if t.finished {
		return nil, fault.ErrTransactionFinished
	}

	if value, found := t.cache.Get(key); found {
		return copyBytes(value), nil
	}

	value, err := t.snapshot.Get([]byte(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// Has - check if a key exists
func (t *Transaction) Has(key string) (bool, error) {
	value, err := t.Get(key)
	if nil != err {
		return false, err
	}
	return nil != value, nil
}

// Put - queue a write
func (t *Transaction) Put(key string, value []byte) error {
	if t.finished {
		return fault.ErrTransactionFinished
	}
	if t.readOnly {
		return fault.ErrReadOnlyTransaction
	}

	v := copyBytes(value)
	t.cache.Set(key, v)
	t.batch.Put([]byte(key), v)
	return nil
}

// Query - scan the snapshot for records under prefix matching selector
func (t *Transaction) Query(prefix string, selector string) (Iterator, error) {
	if t.finished {
		return nil, fault.ErrTransactionFinished
	}

	s, err := ParseSelector(selector)
	if nil != err {
		return nil, err
	}

	iter := t.snapshot.NewIterator(ldb_util.BytesPrefix([]byte(prefix)), nil)
	r := &RecordIterator{
		iter:     iter,
		selector: s,
	}
	t.iterators = append(t.iterators, r)
	return r, nil
}

// Commit - atomically write all queued data and end the transaction
func (t *Transaction) Commit() error {
	if t.finished {
		return fault.ErrTransactionFinished
	}

	var err error
	if !t.readOnly && t.batch.Len() > 0 {
		err = t.database.db.Write(t.batch, nil)
		if nil != err {
			t.database.log.Errorf("commit of %d records failed: %s", t.batch.Len(), err)
		}
	}
	t.finish()
	return err
}

// Abort - discard all queued data and end the transaction
//
// calling Abort after Commit does nothing, so it is safe to defer
func (t *Transaction) Abort() {
	if t.finished {
		return
	}
	if t.batch.Len() > 0 {
		t.database.log.Debugf("abort: discard %d records", t.batch.Len())
	}
	t.finish()
}

func (t *Transaction) finish() {
	for _, r := range t.iterators {
		r.Release()
	}
	t.iterators = nil
	t.batch.Reset()
	t.cache.Clear()
	t.snapshot.Release()
	t.finished = true
	t.database.unlock(t.readOnly)
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
