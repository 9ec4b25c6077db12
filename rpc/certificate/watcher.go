// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - a certificate and key file pair that is re-read
// whenever either file is rewritten
//
// a failed reload leaves the previous certificate in service
type Watcher struct {
	sync.RWMutex

	log  *logger.L
	name string

	certificateFileName string
	keyFileName         string

	certificate *tls.Certificate
	fingerprint [32]byte

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher - load the initial certificate pair
func NewWatcher(log *logger.L, name, certificateFileName, keyFileName string) (*Watcher, error) {
	certificateFileName, err := filepath.Abs(filepath.Clean(certificateFileName))
	if nil != err {
		return nil, err
	}
	keyFileName, err = filepath.Abs(filepath.Clean(keyFileName))
	if nil != err {
		return nil, err
	}

	w := &Watcher{
		log:                 log,
		name:                name,
		certificateFileName: certificateFileName,
		keyFileName:         keyFileName,
	}

	if err := w.Reload(); nil != err {
		return nil, err
	}
	return w, nil
}

// Reload - re-read both files
func (w *Watcher) Reload() error {
	tlsConfiguration, fin, err := Load(w.log, w.name, w.certificateFileName, w.keyFileName)
	if nil != err {
		return err
	}

	w.Lock()
	w.certificate = &tlsConfiguration.Certificates[0]
	w.fingerprint = fin
	w.Unlock()

	w.log.Infof("%s: loaded certificate SHA3-256 fingerprint: %x", w.name, fin)
	return nil
}

// Fingerprint - SHA3-256 of the certificate currently in service
func (w *Watcher) Fingerprint() [32]byte {
	w.RLock()
	defer w.RUnlock()
	return w.fingerprint
}

// TLSConfig - server configuration that always presents the current certificate
func (w *Watcher) TLSConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
			w.RLock()
			defer w.RUnlock()
			return w.certificate, nil
		},
	}
}

// Start - begin watching the directories holding both files
//
// directories are watched rather than the files so that replacement
// by rename is also detected
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return err
	}

	directories := map[string]struct{}{
		filepath.Dir(w.certificateFileName): {},
		filepath.Dir(w.keyFileName):         {},
	}
	for d := range directories {
		if err := watcher.Add(d); nil != err {
			w.log.Errorf("%s: watch: %q  error: %s", w.name, d, err)
			watcher.Close()
			return err
		}
	}

	w.watcher = watcher
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.loop()

	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isWatched(event.Name) || !isChange(event) {
				continue
			}
			w.log.Infof("%s: file event: %v", w.name, event)
			if err := w.Reload(); nil != err {
				w.log.Warnf("%s: reload failed, keeping previous certificate: %s", w.name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("%s: watcher error: %s", w.name, err)
		}
	}
}

// Close - stop watching, the last certificate stays in service
func (w *Watcher) Close() error {
	if nil == w.watcher {
		return nil
	}
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	w.watcher = nil
	return err
}

func (w *Watcher) isWatched(name string) bool {
	name = filepath.Clean(name)
	return name == w.certificateFileName || name == w.keyFileName
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
