// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk world state
//
// The world state is a single LevelDB database of key->value pairs.
// Keys are composite keys (see compositekey) so each state list
// occupies its own contiguous key range:
//
//   0x00 ++ list name ++ 0x00 ++ part₁ ++ 0x00 ++ … ++ 0x00   - one state record
//                                 data: JSON envelope (see ledger)
//
//   0x00 ++ "VERSION"                                          - database version
//                                 data: big endian uint32
//
// All access is through a Transaction:
//
// 1. writers are exclusive, readers are shared
// 2. reads come from a snapshot taken at Begin, overlaid by the
//    transaction's own pending writes
// 3. writes are collected in a batch and written atomically by Commit
// 4. range queries scan the snapshot only
package storage
