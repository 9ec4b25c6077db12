// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package estate - the estate entity and its ownership history
//
// An estate is keyed by category and code. Its price is divided into
// units and every history record allocates a whole number of units to
// an owner. Amounts are signed: a transfer is written as a debit for
// the seller followed by a credit for the buyer.
package estate
