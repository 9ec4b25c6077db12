// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/json"
	"math/big"
	"sort"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/estatenet/estated/fault"
)

// selector operators
const (
	opEq     = "$eq"
	opNe     = "$ne"
	opGt     = "$gt"
	opGte    = "$gte"
	opLt     = "$lt"
	opLte    = "$lte"
	opExists = "$exists"
)

type condition struct {
	path    []string
	op      string
	operand interface{} // json.Number, string, bool or nil
}

// Selector - a filter on JSON records
//
// accepts the subset of Mango selector syntax:
//
//   {"selector": {"price": {"$gt": 0}, "category": "apart", "owner.code": {"$exists": true}}}
//
// all field conditions must hold; a nil Selector matches everything
type Selector struct {
	conditions []condition
}

// ParseSelector - compile a selector expression
//
// the empty string gives a selector that matches every record
func ParseSelector(text string) (*Selector, error) {
	if "" == strings.TrimSpace(text) {
		return &Selector{}, nil
	}

	var query struct {
		Selector map[string]json.RawMessage `json:"selector"`
	}
	if err := json.Unmarshal([]byte(text), &query); nil != err {
		return nil, fault.ErrInvalidSelector
	}
	if nil == query.Selector {
		return nil, fault.ErrInvalidSelector
	}

	fields := make([]string, 0, len(query.Selector))
	for field := range query.Selector {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	s := &Selector{}
	for _, field := range fields {
		if "" == field {
			return nil, fault.ErrInvalidSelector
		}
		path := strings.Split(field, ".")
		raw := bytes.TrimSpace(query.Selector[field])

		if len(raw) > 0 && '{' == raw[0] {
			var operators map[string]json.RawMessage
			if err := json.Unmarshal(raw, &operators); nil != err || 0 == len(operators) {
				return nil, fault.ErrInvalidSelector
			}
			for op, rawOperand := range operators {
				c, err := newCondition(path, op, rawOperand)
				if nil != err {
					return nil, err
				}
				s.conditions = append(s.conditions, c)
			}
			continue
		}

		c, err := newCondition(path, opEq, raw)
		if nil != err {
			return nil, err
		}
		s.conditions = append(s.conditions, c)
	}
	return s, nil
}

func newCondition(path []string, op string, raw json.RawMessage) (condition, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var operand interface{}
	if err := d.Decode(&operand); nil != err {
		return condition{}, fault.ErrInvalidSelector
	}

	switch op {
	case opExists:
		if _, ok := operand.(bool); !ok {
			return condition{}, fault.ErrInvalidSelector
		}
	case opGt, opGte, opLt, opLte:
		switch operand.(type) {
		case json.Number, string:
		default:
			return condition{}, fault.ErrInvalidSelector
		}
	case opEq, opNe:
		switch operand.(type) {
		case json.Number, string, bool, nil:
		default:
			return condition{}, fault.ErrInvalidSelector
		}
	default:
		return condition{}, fault.ErrInvalidSelector
	}

	return condition{
		path:    path,
		op:      op,
		operand: operand,
	}, nil
}

// Match - true if a JSON record satisfies every condition
func (s *Selector) Match(record []byte) bool {
	if nil == s {
		return true
	}
	for _, c := range s.conditions {
		value, dataType, _, err := jsonparser.Get(record, c.path...)
		if opExists == c.op {
			if (nil == err) != c.operand.(bool) {
				return false
			}
			continue
		}
		if nil != err {
			return false
		}
		if !c.match(value, dataType) {
			return false
		}
	}
	return true
}

func (c condition) match(value []byte, dataType jsonparser.ValueType) bool {
	switch operand := c.operand.(type) {

	case json.Number:
		if jsonparser.Number != dataType {
			return opNe == c.op
		}
		a, ok := new(big.Rat).SetString(string(value))
		if !ok {
			return false
		}
		b, ok := new(big.Rat).SetString(operand.String())
		if !ok {
			return false
		}
		return ordered(c.op, a.Cmp(b))

	case string:
		if jsonparser.String != dataType {
			return opNe == c.op
		}
		s, err := jsonparser.ParseString(value)
		if nil != err {
			return false
		}
		return ordered(c.op, strings.Compare(s, operand))

	case bool:
		if jsonparser.Boolean != dataType {
			return opNe == c.op
		}
		b, err := jsonparser.ParseBoolean(value)
		if nil != err {
			return false
		}
		return (b == operand) == (opEq == c.op)

	case nil:
		return (jsonparser.Null == dataType) == (opEq == c.op)
	}
	return false
}

// apply an operator to a three way comparison result
func ordered(op string, cmp int) bool {
	switch op {
	case opEq:
		return 0 == cmp
	case opNe:
		return 0 != cmp
	case opGt:
		return cmp > 0
	case opGte:
		return cmp >= 0
	case opLt:
		return cmp < 0
	case opLte:
		return cmp <= 0
	}
	return false
}
