// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/estatenet/estated/rpc/estates"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	code, err := checkRequired(c.String("code"), ErrMissingCode)
	if nil != err {
		return err
	}
	owner, err := checkRequired(c.String("owner"), ErrMissingOwner)
	if nil != err {
		return err
	}
	category, err := checkRequired(c.String("category"), ErrMissingCategory)
	if nil != err {
		return err
	}
	price, err := checkRequired(c.String("price"), ErrMissingPrice)
	if nil != err {
		return err
	}
	unit, err := checkRequired(c.String("unit"), ErrMissingUnit)
	if nil != err {
		return err
	}

	arguments := &estates.CreateArguments{
		Code:          code,
		Ownercode:     owner,
		Name:          c.String("name"),
		Category:      category,
		Price:         price,
		Unit:          unit,
		DevideTerm:    c.String("term"),
		EstablishedAt: c.String("established"),
	}

	if m.verbose {
		fmt.Fprintf(m.e, "create: %s/%s  owner: %q  price: %s  unit: %s\n", category, code, owner, price, unit)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := client.Create(arguments)
	if nil != err {
		return err
	}

	return printResult(m, result, nil)
}
