// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/fixtures"
	"github.com/estatenet/estated/ledger"
	"github.com/estatenet/estated/mocks"
	"github.com/estatenet/estated/storage"
)

const (
	parcelClass = "org.example.parcel"
	parcelList  = "org.example.parcellist"
)

type marker struct {
	Label string `json:"label"`
	Depth int64  `json:"depth"`
}

type parcel struct {
	Region  string   `json:"region"`
	ID      string   `json:"id"`
	Area    int64    `json:"area"`
	Markers []marker `json:"markers"`
}

func (p parcel) Class() string      { return parcelClass }
func (p parcel) KeyParts() []string { return []string{p.Region, p.ID} }

type survey struct {
	ID string `json:"id"`
}

func (s survey) Class() string      { return "org.example.survey" }
func (s survey) KeyParts() []string { return []string{s.ID} }

var north = parcel{
	Region: "north",
	ID:     "P1",
	Area:   9007199254740993,
	Markers: []marker{
		{Label: "corner", Depth: 2},
		{Label: "well", Depth: 30},
	},
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestSerializeEnvelope(t *testing.T) {
	data, err := ledger.Serialize(north)
	assert.Nil(t, err, "wrong serialize error")

	var fields map[string]interface{}
	_ = json.Unmarshal(data, &fields)
	assert.Equal(t, parcelClass, fields["class"], "wrong class")
	assert.Equal(t, ledger.Current, fields["state"], "wrong state")
	assert.Equal(t, "north", fields["region"], "wrong region")
}

func TestRoundTrip(t *testing.T) {
	data, err := ledger.Serialize(north)
	assert.Nil(t, err, "wrong serialize error")

	p, err := ledger.Deserialize[parcel](data)
	assert.Nil(t, err, "wrong deserialize error")
	assert.Equal(t, north, p, "round trip changed the state")
}

func TestDeserializeMalformed(t *testing.T) {
	records := []string{
		``,
		`not json`,
		`[1,2]`,
		`null`,
	}
	for _, r := range records {
		_, err := ledger.Deserialize[parcel]([]byte(r))
		assert.Equal(t, fault.ErrRecordMalformed, err, "wrong error for: %q", r)
	}
}

func TestDeserializeMissingAttribute(t *testing.T) {
	record := `{"class":"org.example.parcel","state":"current","region":"north","id":"P1","markers":[]}`
	_, err := ledger.Deserialize[parcel]([]byte(record))
	assert.True(t, errors.Is(err, fault.ErrRecordMalformed), "wrong error: %v", err)
	assert.True(t, fault.IsErrRecord(err), "wrong error class: %v", err)

	record = `{"class":"org.example.parcel","region":"north","id":"P1","area":1,"markers":[{"label":"x"}]}`
	_, err = ledger.Deserialize[parcel]([]byte(record))
	assert.True(t, errors.Is(err, fault.ErrRecordMalformed), "nested attribute not checked: %v", err)
}

func TestDeserializeWrongType(t *testing.T) {
	record := `{"class":"org.example.parcel","region":"north","id":"P1","area":"big","markers":[]}`
	_, err := ledger.Deserialize[parcel]([]byte(record))
	assert.True(t, errors.Is(err, fault.ErrRecordMalformed), "wrong error: %v", err)
}

func TestDeserializeClassMismatch(t *testing.T) {
	data, _ := ledger.Serialize(survey{ID: "S1"})
	_, err := ledger.Deserialize[parcel](data)
	assert.Equal(t, fault.ErrClassMismatch, err, "wrong error")

	_, err = ledger.Deserialize[parcel]([]byte(`{"class":"org.example.survey","region":"north","id":"P1","area":1,"markers":[]}`))
	assert.Equal(t, fault.ErrClassMismatch, err, "foreign class accepted")
}

func TestDeserializeMissingClass(t *testing.T) {
	records := []string{
		`{"region":"north","id":"P1","area":1,"markers":[]}`,
		`{"class":7,"region":"north","id":"P1","area":1,"markers":[]}`,
	}
	for _, r := range records {
		_, err := ledger.Deserialize[parcel]([]byte(r))
		assert.True(t, errors.Is(err, fault.ErrRecordMalformed), "wrong error for: %q: %v", r, err)
		assert.False(t, errors.Is(err, fault.ErrClassMismatch), "reported as class mismatch: %q", r)
	}
}

func TestKey(t *testing.T) {
	key, err := ledger.Key(north)
	assert.Nil(t, err, "wrong key error")
	assert.Equal(t, "\x00north\x00P1\x00", key, "wrong key")
}

func setupList(t *testing.T) (*storage.Database, *storage.Transaction, *ledger.List[parcel]) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	trx, err := db.Begin(storage.ReadWrite)
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	return db, trx, ledger.NewList[parcel](trx, parcelList)
}

func TestListAddGetUpdate(t *testing.T) {
	db, trx, list := setupList(t)
	defer db.Close()
	defer trx.Abort()

	assert.Equal(t, parcelList, list.Name(), "wrong name")

	err := list.Add(north)
	assert.Nil(t, err, "wrong add error")

	key, _ := ledger.Key(north)
	p, err := list.Get(key)
	assert.Nil(t, err, "wrong get error")
	assert.Equal(t, north, p, "wrong state")

	err = list.Add(north)
	assert.Equal(t, fault.ErrDuplicateKey, err, "duplicate accepted")

	changed := north
	changed.Area = 12
	err = list.Update(changed)
	assert.Nil(t, err, "wrong update error")

	p, _ = list.Get(key)
	assert.Equal(t, int64(12), p.Area, "update not stored")
}

func TestListNotFound(t *testing.T) {
	db, trx, list := setupList(t)
	defer db.Close()
	defer trx.Abort()

	key, _ := ledger.Key(north)
	_, err := list.Get(key)
	assert.Equal(t, fault.ErrStateNotFound, err, "wrong get error")

	err = list.Update(north)
	assert.Equal(t, fault.ErrStateNotFound, err, "update created a state")

	value, _ := trx.Get("\x00" + parcelList + "\x00north\x00P1\x00")
	assert.Nil(t, value, "update wrote data")

	_, err = list.Get("north:P1")
	assert.Equal(t, fault.ErrInvalidKey, err, "wrong error for malformed key")
}

func TestListQuery(t *testing.T) {
	db, trx, list := setupList(t)
	defer db.Close()

	states := []parcel{
		{Region: "north", ID: "P1", Area: 10, Markers: []marker{}},
		{Region: "north", ID: "P2", Area: 0, Markers: []marker{}},
		{Region: "south", ID: "P3", Area: 30, Markers: []marker{}},
	}
	for _, p := range states {
		assert.Nil(t, list.Add(p), "wrong add error")
	}

	// same type in a different namespace must not be seen
	other := ledger.NewList[parcel](trx, "org.example.otherlist")
	assert.Nil(t, other.Add(parcel{Region: "east", ID: "P4", Area: 40, Markers: []marker{}}), "wrong add error")

	assert.Nil(t, trx.Commit(), "wrong commit error")

	trx, _ = db.Begin(storage.ReadOnly)
	defer trx.Abort()
	list = ledger.NewList[parcel](trx, parcelList)

	iter, err := list.Query(`{"selector":{"area":{"$gt":0}}}`)
	assert.Nil(t, err, "wrong query error")
	result, err := iter.Collect()
	assert.Nil(t, err, "wrong collect error")
	assert.Equal(t, []parcel{states[0], states[2]}, result, "wrong query result")

	iter, _ = list.Query("")
	result, _ = iter.Collect()
	assert.Equal(t, 3, len(result), "wrong unfiltered count")

	_, err = list.Query(`{"selector":`)
	assert.Equal(t, fault.ErrInvalidSelector, err, "wrong error")
}

func TestListAddStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandle(ctl)
	h.EXPECT().Get("\x00"+parcelList+"\x00north\x00P1\x00").Return(nil, fault.ErrTransactionFinished).Times(1)

	list := ledger.NewList[parcel](h, parcelList)
	err := list.Add(north)
	assert.Equal(t, fault.ErrTransactionFinished, err, "store error not propagated")
}

func TestListQuerySelectorAndBadRecord(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandle(ctl)
	iter := mocks.NewMockIterator(ctl)

	good, _ := ledger.Serialize(north)
	h.EXPECT().Query("\x00"+parcelList+"\x00", `{"selector":{"area":{"$gt":0},"state":"current"}}`).Return(iter, nil).Times(1)
	gomock.InOrder(
		iter.EXPECT().Next().Return(true),
		iter.EXPECT().Value().Return(good),
		iter.EXPECT().Next().Return(true),
		iter.EXPECT().Value().Return([]byte(`{"class":"org.example.survey","id":"S1"}`)),
	)
	iter.EXPECT().Release().AnyTimes()

	list := ledger.NewList[parcel](h, parcelList)
	i, err := list.Query(`{"selector":{"area":{"$gt":0}}}`)
	assert.Nil(t, err, "wrong query error")

	result, err := i.Collect()
	assert.Equal(t, fault.ErrClassMismatch, err, "foreign record accepted")
	assert.Nil(t, result, "partial result returned")
}
