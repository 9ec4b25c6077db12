// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/estatenet/estated/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingCategory  = fault.InvalidError("missing category")
	ErrMissingCode      = fault.InvalidError("missing code")
	ErrMissingHistories = fault.InvalidError("missing histories")
	ErrMissingOwner     = fault.InvalidError("missing owner")
	ErrMissingPrice     = fault.InvalidError("missing price")
	ErrMissingUnit      = fault.InvalidError("missing unit")
)
