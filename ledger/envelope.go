// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/estatenet/estated/compositekey"
	"github.com/estatenet/estated/fault"
)

// record status values
const (
	Current = "current"
	History = "history"
)

// envelope fields added to every record
const (
	ClassField  = "class"
	StatusField = "state"
)

// State - an entity that can be held in a List
//
// implementations must be value types: Class is called on the zero value
type State interface {
	Class() string
	KeyParts() []string
}

// Key - the composite key of a state, independent of any list
func Key(state State) (string, error) {
	return compositekey.Make(state.KeyParts()...)
}

// Serialize - encode a state as a current record
func Serialize(state State) ([]byte, error) {
	data, err := json.Marshal(state)
	if nil != err {
		return nil, err
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); nil != err {
		return nil, fmt.Errorf("%w: state is not an object", fault.ErrRecordMalformed)
	}

	class, _ := json.Marshal(state.Class())
	status, _ := json.Marshal(Current)
	fields[ClassField] = class
	fields[StatusField] = status

	return json.Marshal(fields)
}

// Deserialize - decode a record into a state of type T
//
// every field of T must be present in the record and the record class
// must be the class declared by T
func Deserialize[T State](data []byte) (T, error) {
	var state T

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	var fields map[string]interface{}
	if err := d.Decode(&fields); nil != err || nil == fields {
		return state, fault.ErrRecordMalformed
	}

	value, ok := fields[ClassField]
	if !ok {
		return state, fmt.Errorf("%w: missing %s", fault.ErrRecordMalformed, ClassField)
	}
	class, ok := value.(string)
	if !ok {
		return state, fmt.Errorf("%w: %s is not a string", fault.ErrRecordMalformed, ClassField)
	}
	if class != state.Class() {
		return state, fault.ErrClassMismatch
	}
	delete(fields, ClassField)
	delete(fields, StatusField)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnset: true,
		TagName:    "json",
		Result:     &state,
	})
	if nil != err {
		return state, err
	}
	if err := decoder.Decode(fields); nil != err {
		return state, fmt.Errorf("%w: %s", fault.ErrRecordMalformed, err)
	}
	return state, nil
}
