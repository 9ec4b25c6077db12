// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/estatenet/estated/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - the world state database
type Database struct {
	sync.RWMutex // writer transactions hold the write lock

	log      *logger.L
	db       *leveldb.DB
	readOnly bool
}

// Open - open up the database, creating it if necessary
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, name, readOnly)
}

// OpenMemory - an empty database held in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, "memory", ReadWrite)
}

func setup(db *leveldb.DB, name string, readOnly bool) (*Database, error) {
	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %q  version: %d", name, currentDBVersion)

	return &Database{
		log:      log,
		db:       db,
		readOnly: readOnly,
	}, nil
}

// Close - close the database
//
// waits for any active transaction to finish
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Info("closed")
	return err
}

// Begin - start a transaction
//
// a read/write transaction blocks until all other transactions have
// finished; read-only transactions may run together
func (d *Database) Begin(readOnly bool) (*Transaction, error) {
	if !readOnly && d.readOnly {
		return nil, fault.ErrReadOnlyTransaction
	}

	if readOnly {
		d.RLock()
	} else {
		d.Lock()
	}

	if nil == d.db {
		d.unlock(readOnly)
		return nil, fault.ErrNotInitialised
	}

	snapshot, err := d.db.GetSnapshot()
	if nil != err {
		d.unlock(readOnly)
		return nil, err
	}

	return newTransaction(d, snapshot, readOnly), nil
}

func (d *Database) unlock(readOnly bool) {
	if readOnly {
		d.RUnlock()
	} else {
		d.Unlock()
	}
}

// return the stored version, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
