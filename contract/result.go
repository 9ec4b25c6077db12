// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/estatenet/estated/estate"
	"github.com/estatenet/estated/fault"
)

// result status values
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Result - outcome of every contract operation
type Result struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Estate  *estate.Estate  `json:"estate,omitempty"`
	Estates []estate.Estate `json:"estates,omitempty"`
}

// OK - true if the operation succeeded
func (r *Result) OK() bool {
	return StatusOK == r.Status
}

func estateResult(e estate.Estate) *Result {
	return &Result{
		Status: StatusOK,
		Estate: &e,
	}
}

func estatesResult(estates []estate.Estate) *Result {
	return &Result{
		Status:  StatusOK,
		Estates: estates,
	}
}

// client data errors become a result, anything else is returned
func errorResult(err error) (*Result, error) {
	if fault.IsErrInvalid(err) || fault.IsErrNotFound(err) {
		return &Result{
			Status:  StatusError,
			Message: err.Error(),
		}, nil
	}
	if fault.IsErrRecord(err) {
		fault.Criticalf("world state record: %s", err)
	}
	return nil, err
}
