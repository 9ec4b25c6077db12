// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/estatenet/estated/counter"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/fixtures"
	"github.com/estatenet/estated/rpc/certificate"
	"github.com/estatenet/estated/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a loopback address with a port nothing is listening on
func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	address := l.Addr().String()
	_ = l.Close()
	return address
}

func tlsConfiguration(t *testing.T) (*tls.Config, [32]byte) {
	cer, key := fixtures.Certificate()
	tlsConfig, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}
	return tlsConfig, fin
}

func TestRpcListenerServe(t *testing.T) {
	listen := freeAddress(t)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Fatalf("register with error: %s", err)
	}

	tlsConfig, fin := tlsConfiguration(t)

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsConfig,
		fin,
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")
}

func TestRpcListenerServeWhenAddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp4", "127.0.0.1:0")
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	defer busy.Close()

	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{busy.Addr().String()},
	}
	count := counter.Counter(0)
	tlsConfig, fin := tlsConfiguration(t)

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), tlsConfig, fin)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.NotNil(t, err, "bound an address in use")
}

func TestRpcListenerServeWhenMaxConnectionCountTooSmall(t *testing.T) {
	con := listeners.RPCConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:2130"},
	}

	count := counter.Counter(0)

	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		rpc.NewServer(),
		&tls.Config{},
		[32]byte{},
	)
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerServeWhenEmptyListen(t *testing.T) {
	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{},
	}

	count := counter.Counter(0)

	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		rpc.NewServer(),
		&tls.Config{},
		[32]byte{},
	)
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerListenAddresses(t *testing.T) {
	count := counter.Counter(0)

	tests := []struct {
		listen   string
		expected error
	}{
		{"127.0.0.1:2130", nil},
		{"[::1]:2130", nil},
		{"*:2130", nil},
		{"localhost:2130", fault.ErrInvalidIPAddress},
		{"127.0.0.1", fault.ErrInvalidIPAddress},
		{"", fault.ErrInvalidIPAddress},
	}

	for _, test := range tests {
		con := listeners.RPCConfiguration{
			MaximumConnections: 1,
			Listen:             []string{test.listen},
		}
		_, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), &tls.Config{}, [32]byte{})
		assert.Equal(t, test.expected, err, "wrong error for: %q", test.listen)
	}

	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"*:2130"},
	}
	_, _ = listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), &tls.Config{}, [32]byte{})
	assert.Equal(t, "[::]:2130", con.Listen[0], "wildcard not rewritten")
}
