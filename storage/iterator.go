// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

// RecordIterator - records of a range that satisfy a selector
type RecordIterator struct {
	iter     iterator.Iterator
	selector *Selector
	released bool
	err      error
	key      string
	value    []byte
}

// Next - advance to the next matching record
func (r *RecordIterator) Next() bool {
	if r.released {
		return false
	}
	for r.iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		value := r.iter.Value()
		if !r.selector.Match(value) {
			continue
		}
		r.key = string(r.iter.Key())
		r.value = copyBytes(value)
		return true
	}
	r.key = ""
	r.value = nil
	return false
}

// Key - key of the current record
func (r *RecordIterator) Key() string {
	return r.key
}

// Value - value of the current record
func (r *RecordIterator) Value() []byte {
	return r.value
}

// Error - any error from the underlying scan
func (r *RecordIterator) Error() error {
	if r.released {
		return r.err
	}
	return r.iter.Error()
}

// Release - free the scan; the iterator is empty afterwards
func (r *RecordIterator) Release() {
	if r.released {
		return
	}
	r.err = r.iter.Error()
	r.iter.Release()
	r.released = true
}
