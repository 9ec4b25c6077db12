// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runFind(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	category, err := checkRequired(c.String("category"), ErrMissingCategory)
	if nil != err {
		return err
	}
	code, err := checkRequired(c.String("code"), ErrMissingCode)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := client.Find(category, code)
	if nil != err {
		return err
	}

	return printResult(m, result, printEstateText)
}

func runAll(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := client.FindAll()
	if nil != err {
		return err
	}

	return printResult(m, result, printEstatesText)
}
