// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/estatenet/estated/contract"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/rpc"
	"github.com/estatenet/estated/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	switch {
	case len(options["version"]) > 0:
		arguments = []string{"version"}
	case len(options["help"]) > 0:
		arguments = []string{"help"}
	}

	// key and certificate generation runs without a configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: exactly one config-file option is required, %d were given", program, len(options["config-file"]))
	}

	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: configuration: %q  error: %s", program, configurationFile, err)
	}

	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Infof("starting version: %s", version)
	log.Debugf("configuration: %+v", theConfiguration)

	if "" != theConfiguration.PidFile {
		if err := createPidFile(theConfiguration.PidFile); nil != err {
			exitwithstatus.Message("%s: %s", program, err)
		}
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("open database: %q", theConfiguration.Database.Name)
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("database: %q  error: %s", theConfiguration.Database.Name, err)
		exitwithstatus.Message("database: %q  error: %s", theConfiguration.Database.Name, err)
	}
	defer db.Close()

	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, contract.New(db))
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	quiet := len(options["quiet"]) > 0
	sig := waitForSignal(quiet)
	log.Infof("received signal: %v, shutting down…", sig)
}

// exclusive creation fails if another instance holds the file
func createPidFile(fileName string) error {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
	if os.IsExist(err) {
		return fmt.Errorf("another instance is already running, PID file: %q exists", fileName)
	}
	if nil != err {
		return fmt.Errorf("PID file: %q creation failed, error: %s", fileName, err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	return err
}

// block until SIGINT or SIGTERM
func waitForSignal(quiet bool) os.Signal {
	if !quiet {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	signal.Stop(ch)

	if !quiet {
		fmt.Printf("\nreceived signal: %v\nshutting down…\n", sig)
	}
	return sig
}
