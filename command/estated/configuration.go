// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/estatenet/estated/configuration"
	"github.com/estatenet/estated/rpc/listeners"
	"github.com/estatenet/estated/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultEstateDatabase   = "estate.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "estated.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
	defaultLogLevel     = "critical"

	defaultRPCClients = 10
)

// DatabaseType - location of the LevelDB world state
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the daemon configuration file contents
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC  listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging   logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	configurationDirectory := filepath.Dir(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultEstateDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: defaultLogLevel,
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := options.resolveDataDirectory(configurationDirectory); nil != err {
		return nil, err
	}
	if err := options.resolvePaths(); nil != err {
		return nil, err
	}
	return options, nil
}

// "." selects the directory holding the configuration file, the
// result must be an existing directory
func (options *Configuration) resolveDataDirectory(configurationDirectory string) error {
	switch options.DataDirectory {
	case "", "~":
		return fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = filepath.Clean(configurationDirectory)
	default:
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	fileInfo, err := os.Stat(options.DataDirectory)
	if nil != err {
		return err
	}
	if !fileInfo.IsDir() {
		return fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}
	return nil
}

// relative names are taken from the data directory, directories are
// created and database and log names must be plain file names
func (options *Configuration) resolvePaths() error {
	base := options.DataDirectory

	for _, f := range []*string{
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
	} {
		*f = util.EnsureAbsolute(base, *f)
	}

	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(base, options.PidFile)
	}

	for _, plain := range []string{options.Database.Name, options.Logging.File} {
		if !util.IsPlainName(plain) {
			return fmt.Errorf("Files: %q is not plain name", plain)
		}
	}

	var err error
	options.Database.Directory, err = util.EnsureDirectory(base, options.Database.Directory)
	if nil != err {
		return err
	}
	options.Logging.Directory, err = util.EnsureDirectory(base, options.Logging.Directory)
	if nil != err {
		return err
	}

	options.Database.Name = filepath.Join(options.Database.Directory, options.Database.Name)
	return nil
}
