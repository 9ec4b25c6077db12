// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - token bucket throttling shared by the RPC handlers
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/estatenet/estated/fault"
)

// Limit - wait for a single request slot
func Limit(limiter *rate.Limiter) error {
	return wait(limiter, 1)
}

// LimitN - wait for count request slots
//
// an out of range count still costs one slot before being rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count > 0 && count <= maximumCount {
		return wait(limiter, count)
	}
	if err := wait(limiter, 1); nil != err {
		return err
	}
	return fault.ErrInvalidCount
}

// a reservation larger than the burst can never be satisfied
func wait(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
