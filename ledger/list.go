// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"strings"

	"github.com/estatenet/estated/compositekey"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/storage"
)

// List - the states of one type held in the world state
type List[T State] struct {
	name   string
	handle storage.Handle
}

// NewList - bind a list name to a transaction
func NewList[T State](handle storage.Handle, name string) *List[T] {
	return &List[T]{
		name:   name,
		handle: handle,
	}
}

// Name - the namespace of the list
func (l *List[T]) Name() string {
	return l.name
}

func (l *List[T]) ledgerKey(parts []string) (string, error) {
	all := make([]string, 0, len(parts)+1)
	all = append(all, l.name)
	all = append(all, parts...)
	return compositekey.Make(all...)
}

// Add - store a new state, fails if its key is already used
func (l *List[T]) Add(state T) error {
	key, err := l.ledgerKey(state.KeyParts())
	if nil != err {
		return err
	}

	existing, err := l.handle.Get(key)
	if nil != err {
		return err
	}
	if 0 != len(existing) {
		return fault.ErrDuplicateKey
	}

	return l.put(key, state)
}

// Get - fetch the state for a key made by Key
func (l *List[T]) Get(key string) (T, error) {
	var state T

	parts, err := compositekey.Split(key)
	if nil != err {
		return state, err
	}
	ledgerKey, err := l.ledgerKey(parts)
	if nil != err {
		return state, err
	}

	data, err := l.handle.Get(ledgerKey)
	if nil != err {
		return state, err
	}
	if 0 == len(data) {
		return state, fault.ErrStateNotFound
	}
	return Deserialize[T](data)
}

// Update - overwrite an existing state, fails if its key is not used
func (l *List[T]) Update(state T) error {
	key, err := l.ledgerKey(state.KeyParts())
	if nil != err {
		return err
	}

	existing, err := l.handle.Get(key)
	if nil != err {
		return err
	}
	if 0 == len(existing) {
		return fault.ErrStateNotFound
	}

	return l.put(key, state)
}

func (l *List[T]) put(key string, state T) error {
	data, err := Serialize(state)
	if nil != err {
		return err
	}
	return l.handle.Put(key, data)
}

// Query - current states of this list matching a selector
//
// the iterator must be drained or released before the transaction ends
func (l *List[T]) Query(selector string) (*Iterator[T], error) {
	prefix, err := compositekey.Prefix(l.name)
	if nil != err {
		return nil, err
	}
	s, err := currentOnly(selector)
	if nil != err {
		return nil, err
	}

	iter, err := l.handle.Query(prefix, s)
	if nil != err {
		return nil, err
	}
	return &Iterator[T]{iter: iter}, nil
}

// add the current status condition to a selector expression
func currentOnly(selector string) (string, error) {
	query := map[string]map[string]json.RawMessage{}
	if "" != strings.TrimSpace(selector) {
		if err := json.Unmarshal([]byte(selector), &query); nil != err {
			return "", fault.ErrInvalidSelector
		}
	}
	if nil == query["selector"] {
		query["selector"] = make(map[string]json.RawMessage)
	}
	query["selector"][StatusField] = json.RawMessage(`"` + Current + `"`)

	s, err := json.Marshal(query)
	if nil != err {
		return "", err
	}
	return string(s), nil
}

// Iterator - decoded states from a query
type Iterator[T State] struct {
	iter  storage.Iterator
	state T
	err   error
}

// Next - advance to the next state, false at the end or on error
func (i *Iterator[T]) Next() bool {
	if nil != i.err || !i.iter.Next() {
		return false
	}
	state, err := Deserialize[T](i.iter.Value())
	if nil != err {
		i.err = err
		i.iter.Release()
		return false
	}
	i.state = state
	return true
}

// State - the current state
func (i *Iterator[T]) State() T {
	return i.state
}

// Error - first error encountered
func (i *Iterator[T]) Error() error {
	if nil != i.err {
		return i.err
	}
	return i.iter.Error()
}

// Release - free the underlying scan
func (i *Iterator[T]) Release() {
	i.iter.Release()
}

// Collect - drain the iterator into a slice and release it
func (i *Iterator[T]) Collect() ([]T, error) {
	defer i.Release()

	states := []T{}
	for i.Next() {
		states = append(states, i.State())
	}
	if err := i.Error(); nil != err {
		return nil, err
	}
	return states, nil
}
