// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/estatenet/estated/client"
	"github.com/estatenet/estated/contract"
	"github.com/estatenet/estated/estate"
)

func connect(m *metadata) (*client.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %q\n", m.config.Connect)
	}
	return client.Dial(m.config)
}

func checkRequired(value string, err error) (string, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return "", err
	}
	return value, nil
}

// output a result, an ERROR status goes to stderr and becomes a
// non-zero exit
func printResult(m *metadata, result *contract.Result, text func(io.Writer, *contract.Result)) error {
	if contract.StatusOK != result.Status {
		fmt.Fprintf(m.e, "error: %s\n", result.Message)
		return cli.NewExitError("", 2)
	}
	if m.json || nil == text {
		return printJSON(m.w, result)
	}
	text(m.w, result)
	return nil
}

func printEstateText(w io.Writer, result *contract.Result) {
	if nil != result.Estate {
		printEstate(w, *result.Estate)
	}
}

func printEstatesText(w io.Writer, result *contract.Result) {
	for i, e := range result.Estates {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		printEstate(w, e)
	}
	if 0 == len(result.Estates) {
		fmt.Fprintf(w, "no estates\n")
	}
}

// human readable estate with purchases grouped by date and the
// current owner balances
func printEstate(w io.Writer, e estate.Estate) {
	fmt.Fprintf(w, "estate:      %s/%s\n", e.Category, e.Code)
	fmt.Fprintf(w, "name:        %s\n", e.Name)
	fmt.Fprintf(w, "price:       %d\n", e.Price)
	fmt.Fprintf(w, "unit:        %d  (%d units)\n", e.Unit, e.MaxUnits())
	fmt.Fprintf(w, "term:        %d\n", e.DevideTerm)
	fmt.Fprintf(w, "established: %s\n", e.EstablishedAt)

	fmt.Fprintf(w, "purchases:\n")
	for _, p := range e.ByPurchaseDate() {
		fmt.Fprintf(w, "  %s\n", p.PurchasedAt)
		for _, a := range p.Allocations {
			fmt.Fprintf(w, "    %-20s %d\n", a.Ownercode, a.Amount)
		}
	}

	fmt.Fprintf(w, "balances:\n")
	for _, b := range e.Balances() {
		fmt.Fprintf(w, "  %-22s %d\n", b.Ownercode, b.Amount)
	}
}

// indented JSON, no HTML escaping so owner codes print verbatim
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
