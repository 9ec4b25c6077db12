// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Handle - world state access within one transaction
type Handle interface {
	// Get - value at key, nil if absent
	Get(key string) ([]byte, error)

	// Put - store value at key, visible to later Gets in the same transaction
	Put(key string, value []byte) error

	// Query - records under prefix that satisfy a selector
	// an empty selector matches every record
	Query(prefix string, selector string) (Iterator, error)
}

// Iterator - lazy, finite, non-restartable sequence of records
type Iterator interface {
	Next() bool
	Key() string
	Value() []byte
	Error() error
	Release()
}
