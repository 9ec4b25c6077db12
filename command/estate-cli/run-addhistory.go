// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAddHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	category, err := checkRequired(c.String("category"), ErrMissingCategory)
	if nil != err {
		return err
	}
	code, err := checkRequired(c.String("code"), ErrMissingCode)
	if nil != err {
		return err
	}
	histories, err := checkRequired(c.String("histories"), ErrMissingHistories)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "add histories: %s/%s\n  %s\n", category, code, histories)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := client.AddHistories(category, code, histories)
	if nil != err {
		return err
	}

	return printResult(m, result, printEstateText)
}
