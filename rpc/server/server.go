// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/estatenet/estated/counter"
	"github.com/estatenet/estated/rpc/estates"
	"github.com/estatenet/estated/rpc/node"
)

// Create - RPC server with every estated service registered
func Create(log *logger.L, version string, c estates.Contract, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(estates.New(log, c))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
