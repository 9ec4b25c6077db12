// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error values grouped into classes
//
// every error is a typed string constant so callers compare with ==
// or test the class with the IsErr predicates; the PANIC log channel
// records damage that cannot be returned as a plain error
package fault
