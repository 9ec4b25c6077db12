// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	netrpc "net/rpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/estatenet/estated/counter"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/rpc/certificate"
	"github.com/estatenet/estated/rpc/estates"
	"github.com/estatenet/estated/rpc/handler"
	"github.com/estatenet/estated/rpc/listeners"
	"github.com/estatenet/estated/rpc/server"
)

const (
	rpcName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	connections counter.Counter
	listeners   []listeners.Listener
	watchers    []*certificate.Watcher

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC and HTTPS listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, c estates.Contract) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	s := server.Create(log, version, c, &globalData.connections)

	watcher, err := startWatcher(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&globalData.connections,
		s,
		watcher.TLSConfig(),
		watcher.Fingerprint(),
	)
	if nil != err {
		stopListeners()
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		stopListeners()
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	httpsListener, err := initialiseHTTPS(log, httpsConfiguration, version, s)
	if nil != err {
		stopListeners()
		return err
	}
	if nil != httpsListener {
		globalData.listeners = append(globalData.listeners, httpsListener)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	stopListeners()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func stopListeners() {
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Warnf("listener close error: %s", err)
		}
	}
	globalData.listeners = nil

	for _, w := range globalData.watchers {
		if err := w.Close(); nil != err {
			globalData.log.Warnf("certificate watcher close error: %s", err)
		}
	}
	globalData.watchers = nil
}

// load a certificate pair and keep it current as the files change
func startWatcher(log *logger.L, name string, certificateFileName string, keyFileName string) (*certificate.Watcher, error) {
	w, err := certificate.NewWatcher(log, name, certificateFileName, keyFileName)
	if nil != err {
		return nil, err
	}
	if err := w.Start(); nil != err {
		return nil, err
	}
	globalData.watchers = append(globalData.watchers, w)
	return w, nil
}

// HTTPS is optional: nil listener if no listen address is configured
func initialiseHTTPS(log *logger.L, configuration *listeners.HTTPSConfiguration, version string, s *netrpc.Server) (listeners.Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil, nil
	}

	watcher, err := startWatcher(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	hdlr := handler.New(log, s, time.Now(), version, configuration.MaximumConnections)

	l, err := listeners.NewHTTPS(configuration, log, watcher.TLSConfig(), hdlr)
	if nil != err {
		return nil, err
	}

	err = l.Serve()
	if nil != err {
		return nil, err
	}
	return l, nil
}
