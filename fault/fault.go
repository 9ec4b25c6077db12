// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAllocationExceedsPrice = InvalidError("allocation exceeds price")
	ErrAlreadyInitialised     = ProcessError("already initialised")
	ErrAmountNotUnitAligned   = InvalidError("amount not unit-aligned")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrClassMismatch          = RecordError("record class does not match")
	ErrConfigurationNotTable  = InvalidError("configuration must return a table")
	ErrDuplicateKey           = ExistsError("state already exists")
	ErrFingerprintMismatch    = InvalidError("certificate fingerprint mismatch")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidHistories       = InvalidError("invalid histories")
	ErrInvalidIPAddress       = InvalidError("invalid IP address")
	ErrInvalidKey             = InvalidError("invalid composite key")
	ErrInvalidKeyPart         = InvalidError("invalid composite key part")
	ErrInvalidNumber          = InvalidError("invalid number")
	ErrInvalidPrice           = InvalidError("price must be positive")
	ErrInvalidSelector        = InvalidError("invalid selector")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidUnit            = InvalidError("unit must be positive")
	ErrKeyFileExists          = ExistsError("key file already exists")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrNegativeBalance        = InvalidError("owner balance would be negative")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrPriceNotUnitAligned    = InvalidError("price not unit-aligned")
	ErrRateLimiting           = InvalidError("rate limiting")
	ErrReadOnlyTransaction    = ProcessError("transaction is read only")
	ErrRecordMalformed        = RecordError("record is malformed")
	ErrStateNotFound          = NotFoundError("state not found")
	ErrTransactionFinished    = ProcessError("transaction already finished")
	ErrZeroAmount             = InvalidError("amount must not be zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
// wrapped errors are unwrapped to find the class
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
