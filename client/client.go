// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - JSON RPC connection to an estated node
package client

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/estatenet/estated/contract"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/rpc/estates"
	"github.com/estatenet/estated/rpc/node"
)

const defaultTimeout = 10 * time.Second

// Configuration - how to reach a node
type Configuration struct {
	Connect     string        // HOST:PORT
	Insecure    bool          // skip certificate verification
	Fingerprint string        // hex SHA3-256 of the node certificate, implies Insecure
	Timeout     time.Duration // dial timeout, zero for the default
}

// Client - to hold RPC connections streams
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial - connect to a node
func Dial(configuration *Configuration) (*Client, error) {
	if "" == configuration.Connect {
		return nil, fault.ErrMissingParameters
	}

	tlsConfig, err := tlsConfiguration(configuration)
	if nil != err {
		return nil, err
	}

	timeout := configuration.Timeout
	if 0 == timeout {
		timeout = defaultTimeout
	}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp", configuration.Connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:   conn,
		client: jsonrpc.NewClient(conn),
	}, nil
}

func tlsConfiguration(configuration *Configuration) (*tls.Config, error) {
	if "" == configuration.Fingerprint {
		return &tls.Config{
			InsecureSkipVerify: configuration.Insecure,
		}, nil
	}

	expected, err := hex.DecodeString(strings.TrimSpace(configuration.Fingerprint))
	if nil != err || sha3.New256().Size() != len(expected) {
		return nil, fault.ErrFingerprintMismatch
	}

	// the chain is not verified, only the leaf is compared
	return &tls.Config{
		InsecureSkipVerify: true,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fault.ErrFingerprintMismatch
			}
			actual := sha3.Sum256(rawCerts[0])
			if !bytes.Equal(actual[:], expected) {
				return fault.ErrFingerprintMismatch
			}
			return nil
		},
	}, nil
}

// Close - shutdown the connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Create - register an estate
func (c *Client) Create(arguments *estates.CreateArguments) (*contract.Result, error) {
	var reply contract.Result
	if err := c.client.Call("Estates.Create", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// AddHistories - append allocation records given as a JSON array
func (c *Client) AddHistories(category string, code string, histories string) (*contract.Result, error) {
	if !json.Valid([]byte(histories)) {
		return nil, fault.ErrInvalidHistories
	}
	arguments := estates.AddHistoriesArguments{
		Category:  category,
		Code:      code,
		Histories: []byte(histories),
	}
	var reply contract.Result
	if err := c.client.Call("Estates.AddHistories", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Find - fetch one estate
func (c *Client) Find(category string, code string) (*contract.Result, error) {
	arguments := estates.FindArguments{
		Category: category,
		Code:     code,
	}
	var reply contract.Result
	if err := c.client.Call("Estates.Find", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// FindAll - fetch every estate
func (c *Client) FindAll() (*contract.Result, error) {
	var reply contract.Result
	if err := c.client.Call("Estates.FindAll", &estates.FindAllArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - node status
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.client.Call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
