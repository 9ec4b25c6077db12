// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/bitmark-inc/logger"
	"github.com/mitchellh/mapstructure"

	"github.com/estatenet/estated/estate"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/storage"
)

// Contract - estate operations over a database
type Contract struct {
	log *logger.L
	db  *storage.Database
}

// New - contract using an open database
func New(db *storage.Database) *Contract {
	return &Contract{
		log: logger.New("contract"),
		db:  db,
	}
}

// Create - register an estate wholly owned by its founder
//
// all numeric arguments are decimal strings
func (c *Contract) Create(code string, ownercode string, name string, category string, price string, unit string, devideTerm string, establishedAt string) (*Result, error) {

	if "" == code || "" == category || "" == ownercode {
		return errorResult(fault.ErrMissingParameters)
	}

	p, err := parseNumber(price)
	if nil != err {
		return errorResult(err)
	}
	u, err := parseNumber(unit)
	if nil != err {
		return errorResult(err)
	}
	d, err := parseNumber(devideTerm)
	if nil != err {
		return errorResult(err)
	}

	if p <= 0 {
		return errorResult(fault.ErrInvalidPrice)
	}
	if u <= 0 {
		return errorResult(fault.ErrInvalidUnit)
	}
	if 0 != p%u {
		return errorResult(fault.ErrPriceNotUnitAligned)
	}

	histories := []estate.History{
		{
			Ownercode:   ownercode,
			Amount:      p,
			PurchasedAt: establishedAt,
		},
	}
	e := estate.CreateInstance(code, name, category, p, u, d, establishedAt, histories)

	trx, err := c.db.Begin(storage.ReadWrite)
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	err = estate.NewList(trx).AddEstate(e)
	if nil != err {
		c.log.Warnf("create: %s/%s  error: %s", category, code, err)
		return errorResult(err)
	}
	err = trx.Commit()
	if nil != err {
		c.log.Errorf("create: %s/%s  commit error: %s", category, code, err)
		return nil, err
	}

	c.log.Infof("created: %s/%s  price: %d  unit: %d  owner: %s", category, code, p, u, ownercode)
	return estateResult(e), nil
}

// AddHistories - append allocation records to an estate
//
// histories is a JSON array of {ownercode, amount, purchasedAt}
func (c *Contract) AddHistories(category string, code string, histories string) (*Result, error) {

	key, err := estate.MakeKey(category, code)
	if nil != err {
		return errorResult(err)
	}

	trx, err := c.db.Begin(storage.ReadWrite)
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	list := estate.NewList(trx)
	e, err := list.GetEstate(key)
	if nil != err {
		return errorResult(err)
	}

	records, err := parseHistories(histories)
	if nil != err {
		return errorResult(err)
	}

	err = e.Validate(records)
	if nil != err {
		c.log.Debugf("add histories: %s/%s  rejected: %s", category, code, err)
		return errorResult(err)
	}

	e.Histories = append(e.Histories, records...)
	err = list.UpdateEstate(e)
	if nil != err {
		return errorResult(err)
	}
	err = trx.Commit()
	if nil != err {
		c.log.Errorf("add histories: %s/%s  commit error: %s", category, code, err)
		return nil, err
	}

	c.log.Infof("add histories: %s/%s  records: %d  allocated: %d", category, code, len(records), e.Allocated())
	return estateResult(e), nil
}

// Find - fetch one estate
func (c *Contract) Find(category string, code string) (*Result, error) {
	key, err := estate.MakeKey(category, code)
	if nil != err {
		return errorResult(err)
	}

	trx, err := c.db.Begin(storage.ReadOnly)
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	e, err := estate.NewList(trx).GetEstate(key)
	if nil != err {
		return errorResult(err)
	}
	return estateResult(e), nil
}

// FindAll - every estate with a positive price in key order
func (c *Contract) FindAll() (*Result, error) {
	trx, err := c.db.Begin(storage.ReadOnly)
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	estates, err := estate.NewList(trx).AllEstates()
	if nil != err {
		c.log.Errorf("find all: error: %s", err)
		return nil, err
	}
	return estatesResult(estates), nil
}

func parseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		return 0, fault.ErrInvalidNumber
	}
	return n, nil
}

// strict decode: every record needs all three fields and an integer amount
func parseHistories(s string) ([]estate.History, error) {
	d := json.NewDecoder(bytes.NewReader([]byte(s)))
	d.UseNumber()

	var items []interface{}
	if err := d.Decode(&items); nil != err || nil == items {
		return nil, fault.ErrInvalidHistories
	}

	records := make([]estate.History, 0, len(items))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnset:  true,
		ErrorUnused: true,
		TagName:     "json",
		Result:      &records,
	})
	if nil != err {
		return nil, err
	}
	if err := decoder.Decode(items); nil != err {
		return nil, fault.ErrInvalidHistories
	}
	return records, nil
}
