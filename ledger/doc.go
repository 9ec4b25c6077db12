// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - typed collections of world state records
//
// A state is any value type that declares a class and the ordered
// parts of its key.  It is stored as a JSON envelope:
//
//   {"class": <class>, "state": "current", <entity fields>…}
//
// under the key:
//
//   compositekey.Make(list name, key parts…)
//
// so each List owns one key namespace of the world state.
package ledger
