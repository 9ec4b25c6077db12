// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/estatenet/estated/rpc/certificate"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

var usage = []struct {
	command     string
	alias       string
	description []string
}{
	{"help", "h", []string{"display this message"}},
	{"version", "v", []string{"display version string"}},
	{"gen-rpc-cert [DIR] [IPs...]", "rpc", []string{
		"create private key in:  DIR/" + rpcPrivateKeyFilename,
		"and the certificate in: DIR/" + rpcCertificateFilename,
		"extra IPs replace the local interface addresses",
	}},
	{"start", "run", []string{"run the node, same as no arguments"}},
	{"config-test", "cfg", []string{"print the expanded configuration and exit"}},
}

// commands that need no configuration file, returns false if the
// command must be deferred until the configuration is read
func processSetupCommand(program string, arguments []string) bool {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {
	case "gen-rpc-cert", "rpc":
		directory := "."
		if len(arguments) > 0 && "" != arguments[0] {
			directory = arguments[0]
			arguments = arguments[1:]
		}
		certificateFilename := filepath.Join(directory, rpcCertificateFilename)
		privateKeyFilename := filepath.Join(directory, rpcPrivateKeyFilename)

		addresses := make([]string, 0, len(arguments))
		for _, a := range arguments {
			if "" != a {
				addresses = append(addresses, a)
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			exitwithstatus.Message("generate RPC key: %q and certificate: %q error: %s", privateKeyFilename, certificateFilename, err)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)
		return true

	case "start", "run", "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	case "help", "h", "?":
		printUsage(program)
		return true

	default:
		fmt.Printf("error: no such command: %q\n", command)
		printUsage(program)
		exitwithstatus.Exit(1)
	}
	return true
}

func printUsage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)
	fmt.Printf("supported commands:\n\n")
	for _, u := range usage {
		for i, d := range u.description {
			if 0 == i {
				fmt.Printf("  %-28s %-6s - %s\n", u.command, "("+u.alias+")", d)
			} else {
				fmt.Printf("  %-28s %-6s   %s\n", "", "", d)
			}
		}
		fmt.Printf("\n")
	}
}

// commands that only need the decoded configuration
func processConfigCommand(arguments []string, options *Configuration) bool {
	switch arguments[0] {
	case "config-test", "cfg":
		b, err := json.MarshalIndent(options, "", "  ")
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		fmt.Printf("%s\n", b)
		return true

	default:
		return false
	}
}
