// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/estatenet/estated/client"
)

type metadata struct {
	config  *client.Configuration
	json    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "estate-cli"
	app.Usage = "register and query estates on an estated node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " estated host/IP and port, `HOST:PORT`",
			EnvVar: "ESTATED_CONNECT",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: " do not verify the node certificate",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected node certificate SHA3-256 `HEX`",
			EnvVar: "ESTATED_FINGERPRINT",
		},
		cli.BoolFlag{
			Name:  "json, j",
			Usage: " print raw JSON results",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 10 * time.Second,
			Usage: " connection timeout `DURATION`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "register a new estate with its full price allocated to one owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "code, C",
					Value: "",
					Usage: "*estate code `STRING`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*initial owner code `STRING`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: " estate name `STRING`",
				},
				cli.StringFlag{
					Name:  "category, g",
					Value: "",
					Usage: "*estate category `STRING`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "*total price `NUMBER`",
				},
				cli.StringFlag{
					Name:  "unit, u",
					Value: "",
					Usage: "*allocation granularity `NUMBER`",
				},
				cli.StringFlag{
					Name:  "term, T",
					Value: "0",
					Usage: " division term `NUMBER`",
				},
				cli.StringFlag{
					Name:  "established, e",
					Value: "",
					Usage: " establishment timestamp `STRING`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "find",
			Usage:     "display one estate with its ownership",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "category, g",
					Value: "",
					Usage: "*estate category `STRING`",
				},
				cli.StringFlag{
					Name:  "code, C",
					Value: "",
					Usage: "*estate code `STRING`",
				},
			},
			Action: runFind,
		},
		{
			Name:   "all",
			Usage:  "list every registered estate",
			Action: runAll,
		},
		{
			Name:      "add-history",
			Usage:     "record a purchase as allocation histories",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "category, g",
					Value: "",
					Usage: "*estate category `STRING`",
				},
				cli.StringFlag{
					Name:  "code, C",
					Value: "",
					Usage: "*estate code `STRING`",
				},
				cli.StringFlag{
					Name:  "histories, H",
					Value: "",
					Usage: "*JSON array of {ownercode, amount, purchasedAt} `JSON`",
				},
			},
			Action: runAddHistory,
		},
		{
			Name:   "info",
			Usage:  "display estated node information",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display estate-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// set up the connection parameters
	app.Before = func(c *cli.Context) error {

		c.App.Metadata["config"] = &metadata{
			config: &client.Configuration{
				Connect:     c.GlobalString("connect"),
				Insecure:    c.GlobalBool("insecure"),
				Fingerprint: c.GlobalString("fingerprint"),
				Timeout:     c.GlobalDuration("timeout"),
			},
			json:    c.GlobalBool("json"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
