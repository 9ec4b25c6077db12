// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/estatenet/estated/counter"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/fixtures"
	"github.com/estatenet/estated/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctr := counter.Counter(3)
	start := time.Now().Add(-time.Minute)
	n := node.New(logger.New(fixtures.LogCategory), start, "1.2.3", &ctr)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong info error")
	assert.Equal(t, "1.2.3", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.Connections, "wrong connections")

	uptime, err := time.ParseDuration(reply.Uptime)
	assert.Nil(t, err, "uptime not a duration")
	assert.True(t, uptime >= time.Minute, "wrong uptime: %s", reply.Uptime)
}

func TestNodeInfoRateLimited(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctr := counter.Counter(0)
	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", &ctr)
	n.Limiter = rate.NewLimiter(1, 0)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Equal(t, fault.ErrRateLimiting, err, "wrong rate limit error")
}
