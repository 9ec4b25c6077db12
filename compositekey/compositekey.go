// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package compositekey - build and split keys made from ordered string parts
//
// Layout of a key:
//
//   0x00 ++ part₁ ++ 0x00 ++ part₂ ++ 0x00 ++ … ++ partₙ ++ 0x00
//
// A key made from the leading parts of a sequence is a byte prefix of
// the key made from the whole sequence, so namespaces can be scanned
// as a LevelDB prefix range.
package compositekey

import (
	"strings"
	"unicode/utf8"

	"github.com/estatenet/estated/fault"
)

// Separator - delimits parts; may not occur inside a part
const Separator = "\x00"

// Make - build a composite key from an ordered list of parts
func Make(parts ...string) (string, error) {
	n := 1
	for _, part := range parts {
		if !utf8.ValidString(part) || strings.Contains(part, Separator) {
			return "", fault.ErrInvalidKeyPart
		}
		n += len(part) + 1
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteString(Separator)
	for _, part := range parts {
		b.WriteString(part)
		b.WriteString(Separator)
	}
	return b.String(), nil
}

// Prefix - key covering every key whose leading parts are the ones given
func Prefix(parts ...string) (string, error) {
	return Make(parts...)
}

// Split - recover the ordered parts of a key created by Make
func Split(key string) ([]string, error) {
	if !strings.HasPrefix(key, Separator) {
		return nil, fault.ErrInvalidKey
	}
	body := key[len(Separator):]
	if "" == body {
		return []string{}, nil
	}
	if !strings.HasSuffix(body, Separator) {
		return nil, fault.ErrInvalidKey
	}
	return strings.Split(body[:len(body)-len(Separator)], Separator), nil
}
