// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contract - the estate operations
//
// Every operation runs in its own storage transaction. Client data
// errors (an absent estate, a rejected allocation, an unparsable
// argument) are returned as a Result with status ERROR and a nil
// error. Any other error aborts the transaction and is returned as is.
package contract
