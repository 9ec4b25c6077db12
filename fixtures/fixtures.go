// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for tests
package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - start a logger writing into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop the logger and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

var certificate struct {
	sync.Once
	cert string
	key  string
}

// Certificate - a self-signed PEM certificate and key, generated once per test binary
func Certificate() (string, string) {
	certificate.Do(func() {
		cert, key, err := certgen.NewTLSCertPair("estated test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
		if nil != err {
			panic(fmt.Sprintf("certificate generation error: %s", err))
		}
		certificate.cert = string(cert)
		certificate.key = string(key)
	})
	return certificate.cert, certificate.key
}
