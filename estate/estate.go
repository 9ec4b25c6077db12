// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estate

import (
	"github.com/estatenet/estated/compositekey"
	"github.com/estatenet/estated/ledger"
)

// Class - record class of an estate
const Class = "org.estatenet.estate"

// History - one allocation of units to an owner
type History struct {
	Ownercode   string `json:"ownercode"`
	Amount      int64  `json:"amount"`
	PurchasedAt string `json:"purchasedAt"`
}

// Estate - a registered real estate asset
type Estate struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	Unit          int64     `json:"unit"`
	DevideTerm    int64     `json:"devideTerm"`
	EstablishedAt string    `json:"establishedAt"`
	Histories     []History `json:"histories"`
}

// CreateInstance - build an estate from its attributes
//
// no validation is done here
func CreateInstance(code string, name string, category string, price int64, unit int64, devideTerm int64, establishedAt string, histories []History) Estate {
	if nil == histories {
		histories = []History{}
	}
	return Estate{
		Code:          code,
		Name:          name,
		Category:      category,
		Price:         price,
		Unit:          unit,
		DevideTerm:    devideTerm,
		EstablishedAt: establishedAt,
		Histories:     histories,
	}
}

// MakeKey - the key of an estate
func MakeKey(category string, code string) (string, error) {
	return compositekey.Make(category, code)
}

// Class - record class
func (e Estate) Class() string {
	return Class
}

// KeyParts - category then code
func (e Estate) KeyParts() []string {
	return []string{e.Category, e.Code}
}

// Key - composite key of this estate
func (e Estate) Key() (string, error) {
	return MakeKey(e.Category, e.Code)
}

// ToBytes - encode as a current record
func (e Estate) ToBytes() ([]byte, error) {
	return ledger.Serialize(e)
}

// FromBytes - decode a record
func FromBytes(data []byte) (Estate, error) {
	return ledger.Deserialize[Estate](data)
}
