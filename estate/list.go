// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estate

import (
	"github.com/estatenet/estated/ledger"
	"github.com/estatenet/estated/storage"
)

// ListName - namespace of estates in the world state
const ListName = "org.estatenet.estatelist"

// selector for every registered estate
const allEstatesSelector = `{"selector":{"price":{"$gt":0}}}`

// List - estates held in one transaction
type List struct {
	states *ledger.List[Estate]
}

// NewList - estate list bound to a transaction
func NewList(handle storage.Handle) *List {
	return &List{
		states: ledger.NewList[Estate](handle, ListName),
	}
}

// AddEstate - register a new estate
func (l *List) AddEstate(e Estate) error {
	return l.states.Add(e)
}

// GetEstate - fetch an estate by a key from MakeKey
func (l *List) GetEstate(key string) (Estate, error) {
	return l.states.Get(key)
}

// UpdateEstate - overwrite a registered estate
func (l *List) UpdateEstate(e Estate) error {
	return l.states.Update(e)
}

// AllEstates - every estate with a positive price in key order
func (l *List) AllEstates() ([]Estate, error) {
	iter, err := l.states.Query(allEstatesSelector)
	if nil != err {
		return nil, err
	}
	return iter.Collect()
}
