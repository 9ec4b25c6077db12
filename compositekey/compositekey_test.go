// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compositekey_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estatenet/estated/compositekey"
	"github.com/estatenet/estated/fault"
)

func TestMake(t *testing.T) {
	key, err := compositekey.Make("apart", "X1")
	assert.Nil(t, err, "wrong make error")
	assert.Equal(t, "\x00apart\x00X1\x00", key, "wrong key")

	again, _ := compositekey.Make("apart", "X1")
	assert.Equal(t, key, again, "key is not deterministic")

	swapped, _ := compositekey.Make("X1", "apart")
	assert.NotEqual(t, key, swapped, "key is not order sensitive")
}

func TestMakeInvalidPart(t *testing.T) {
	_, err := compositekey.Make("apart", "X\x001")
	assert.Equal(t, fault.ErrInvalidKeyPart, err, "wrong error")

	_, err = compositekey.Make(string([]byte{0xff, 0xfe}))
	assert.Equal(t, fault.ErrInvalidKeyPart, err, "wrong error")
}

// distinct part sequences, including ones that would collide if
// naively concatenated, must give distinct keys
func TestNoCollisions(t *testing.T) {
	sequences := [][]string{
		{},
		{""},
		{"", ""},
		{"a"},
		{"ab"},
		{"a", "b"},
		{"ab", ""},
		{"", "ab"},
		{"a", "", "b"},
		{"a:b"},
		{"a", ":b"},
		{"org.estatenet.estatelist", "apart", "X1"},
		{"org.estatenet.estatelist", "apartX1"},
	}

	seen := make(map[string][]string)
	for _, parts := range sequences {
		key, err := compositekey.Make(parts...)
		if !assert.Nil(t, err, "make error for: %q", parts) {
			continue
		}
		if previous, ok := seen[key]; ok {
			t.Errorf("collision between: %q and %q", previous, parts)
		}
		seen[key] = parts
	}
}

func TestSplitRoundTrip(t *testing.T) {
	sequences := [][]string{
		{},
		{""},
		{"", ""},
		{"hotel", "0001"},
		{"org.estatenet.estatelist", "apart", "000003"},
		{"日本", "東京"},
	}

	for _, parts := range sequences {
		key, err := compositekey.Make(parts...)
		assert.Nil(t, err, "make error for: %q", parts)

		actual, err := compositekey.Split(key)
		assert.Nil(t, err, "split error for: %q", key)
		assert.Equal(t, parts, actual, "wrong parts for key: %q", key)
	}
}

func TestSplitInvalid(t *testing.T) {
	keys := []string{
		"",
		"apart\x00X1\x00",
		"\x00apart\x00X1",
	}
	for _, key := range keys {
		_, err := compositekey.Split(key)
		assert.Equal(t, fault.ErrInvalidKey, err, "wrong error for key: %q", key)
	}
}

func TestPrefix(t *testing.T) {
	prefix, err := compositekey.Prefix("org.estatenet.estatelist")
	assert.Nil(t, err, "wrong prefix error")

	inside, _ := compositekey.Make("org.estatenet.estatelist", "apart", "X1")
	assert.True(t, strings.HasPrefix(inside, prefix), "key outside namespace")

	outside, _ := compositekey.Make("org.estatenet.estatelistx", "apart", "X1")
	assert.False(t, strings.HasPrefix(outside, prefix), "key leaked into namespace")
}
