// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
)

// channel for damage reports: corrupt records and other states
// that an operation cannot recover from
var critical struct {
	sync.Mutex
	log *logger.L
}

// Initialise - open the PANIC log channel
func Initialise() error {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		return ErrAlreadyInitialised
	}
	critical.log = logger.New("PANIC")
	return nil
}

// Finalise - flush and close the PANIC log channel
func Finalise() {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		critical.log.Flush()
		critical.log = nil
	}
}

// Criticalf - report with the caller's file and line
//
// falls back to stdout when Initialise has not been called
func Criticalf(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		message = fmt.Sprintf("(%s:%d) %s", filepath.Base(file), line, message)
	}

	critical.Lock()
	defer critical.Unlock()

	if nil == critical.log {
		fmt.Printf("*** %s\n", message)
		return
	}
	critical.log.Critical(message)
	critical.log.Flush()
}
