// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract_test

import (
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estatenet/estated/contract"
	"github.com/estatenet/estated/estate"
	"github.com/estatenet/estated/fault"
	"github.com/estatenet/estated/fixtures"
	"github.com/estatenet/estated/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T) (*storage.Database, *contract.Contract) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	return db, contract.New(db)
}

func createApart(t *testing.T, c *contract.Contract) {
	r, err := c.Create("X1", "OwnerA", "N", "apart", "1000", "100", "12", "2020-01-01")
	assert.Nil(t, err, "wrong create error")
	assert.True(t, r.OK(), "create failed: %s", r.Message)
}

func TestCreateThenFind(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.Find("apart", "X1")
	assert.Nil(t, err, "wrong find error")
	assert.Equal(t, contract.StatusOK, r.Status, "wrong status")

	expected := estate.Estate{
		Code:          "X1",
		Name:          "N",
		Category:      "apart",
		Price:         1000,
		Unit:          100,
		DevideTerm:    12,
		EstablishedAt: "2020-01-01",
		Histories: []estate.History{
			{Ownercode: "OwnerA", Amount: 1000, PurchasedAt: "2020-01-01"},
		},
	}
	assert.Equal(t, &expected, r.Estate, "wrong estate")
}

func TestCreateDuplicate(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.Create("X1", "OwnerB", "Other", "apart", "5000", "500", "6", "2021-01-01")
	assert.Nil(t, r, "duplicate returned a result")
	assert.Equal(t, fault.ErrDuplicateKey, err, "wrong duplicate error")

	r, _ = c.Find("apart", "X1")
	assert.Equal(t, "N", r.Estate.Name, "duplicate create changed estate")
	assert.Equal(t, int64(1000), r.Estate.Price, "duplicate create changed price")
}

func TestCreateSameCodeOtherCategory(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.Create("X1", "OwnerA", "N", "house", "1000", "100", "12", "2020-01-01")
	assert.Nil(t, err, "wrong create error")
	assert.True(t, r.OK(), "same code in another category rejected")
}

func TestCreateInvalidArguments(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"bad price", []string{"X1", "A", "N", "apart", "1e3", "100", "12", "d"}, fault.ErrInvalidNumber},
		{"bad unit", []string{"X1", "A", "N", "apart", "1000", "", "12", "d"}, fault.ErrInvalidNumber},
		{"bad term", []string{"X1", "A", "N", "apart", "1000", "100", "twelve", "d"}, fault.ErrInvalidNumber},
		{"zero price", []string{"X1", "A", "N", "apart", "0", "100", "12", "d"}, fault.ErrInvalidPrice},
		{"negative unit", []string{"X1", "A", "N", "apart", "1000", "-100", "12", "d"}, fault.ErrInvalidUnit},
		{"price not aligned", []string{"X1", "A", "N", "apart", "1050", "100", "12", "d"}, fault.ErrPriceNotUnitAligned},
		{"no code", []string{"", "A", "N", "apart", "1000", "100", "12", "d"}, fault.ErrMissingParameters},
		{"no owner", []string{"X1", "", "N", "apart", "1000", "100", "12", "d"}, fault.ErrMissingParameters},
		{"NUL in code", []string{"X\x001", "A", "N", "apart", "1000", "100", "12", "d"}, fault.ErrInvalidKeyPart},
	}

	for _, test := range tests {
		a := test.args
		r, err := c.Create(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
		assert.Nil(t, err, "%s: wrong error", test.name)
		assert.Equal(t, contract.StatusError, r.Status, "%s: wrong status", test.name)
		assert.Equal(t, test.expected.Error(), r.Message, "%s: wrong message", test.name)
	}

	r, _ := c.FindAll()
	assert.Equal(t, 0, len(r.Estates), "rejected create was stored")
}

func TestAddHistoriesNotFound(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	r, err := c.AddHistories("apart", "X9", `[{"ownercode":"B","amount":100,"purchasedAt":"d"}]`)
	assert.Nil(t, err, "not found should not be an error")
	assert.Equal(t, contract.StatusError, r.Status, "wrong status")
	assert.Equal(t, fault.ErrStateNotFound.Error(), r.Message, "wrong message")

	found, err := c.Find("apart", "X9")
	assert.Nil(t, err, "not found should not be an error")
	assert.Equal(t, r, found, "find and add histories report absence differently")
}

func TestAddHistoriesNotFoundBeforeParse(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	r, err := c.AddHistories("apart", "X9", `not json`)
	assert.Nil(t, err, "not found should not be an error")
	assert.Equal(t, fault.ErrStateNotFound.Error(), r.Message, "wrong message")
}

func TestAddHistoriesAmountLimits(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	tests := []struct {
		histories string
		expected  error
	}{
		{`[{"ownercode":"OwnerB","amount":9223372036854775800,"purchasedAt":"2021-01-01"}]`, fault.ErrAllocationExceedsPrice},
		{`[{"ownercode":"OwnerA","amount":-9223372036854775800,"purchasedAt":"2021-01-01"}]`, fault.ErrAllocationExceedsPrice},
		{`[{"ownercode":"OwnerA","amount":-1000,"purchasedAt":"2021-01-01"},{"ownercode":"OwnerB","amount":9223372036854775800,"purchasedAt":"2021-01-01"}]`, fault.ErrAllocationExceedsPrice},
		{`[{"ownercode":"OwnerB","amount":0,"purchasedAt":"2021-01-01"}]`, fault.ErrZeroAmount},
	}
	for _, test := range tests {
		r, err := c.AddHistories("apart", "X1", test.histories)
		assert.Nil(t, err, "validation should not be an error: %s", test.histories)
		assert.Equal(t, contract.StatusError, r.Status, "accepted: %s", test.histories)
		assert.Equal(t, test.expected.Error(), r.Message, "wrong message for: %s", test.histories)
	}

	r, _ := c.Find("apart", "X1")
	assert.Equal(t, 1, len(r.Estate.Histories), "rejected histories were stored")
	assert.Equal(t, int64(1000), r.Estate.Allocated(), "wrong allocated")
}

func TestAddHistoriesReturnToRemainder(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.AddHistories("apart", "X1", `[{"ownercode":"OwnerA","amount":-200,"purchasedAt":"2021-01-01"}]`)
	assert.Nil(t, err, "wrong add error")
	assert.True(t, r.OK(), "debit rejected: %s", r.Message)
	assert.Equal(t, int64(800), r.Estate.Allocated(), "wrong allocated")
	assert.Equal(t, int64(200), r.Estate.Remaining(), "wrong remaining")

	r, _ = c.AddHistories("apart", "X1", `[{"ownercode":"B","amount":200,"purchasedAt":"2021-02-01"}]`)
	assert.True(t, r.OK(), "remainder credit rejected: %s", r.Message)
}

func TestAddHistoriesUnitMisalignment(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.AddHistories("apart", "X1", `[{"ownercode":"OwnerA","amount":-150,"purchasedAt":"d"},{"ownercode":"B","amount":150,"purchasedAt":"d"}]`)
	assert.Nil(t, err, "validation should not be an error")
	assert.Equal(t, contract.StatusError, r.Status, "wrong status")
	assert.Equal(t, fault.ErrAmountNotUnitAligned.Error(), r.Message, "wrong message")

	r, _ = c.Find("apart", "X1")
	assert.Equal(t, 1, len(r.Estate.Histories), "rejected histories were stored")
}

func TestAddHistoriesOverflow(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.AddHistories("apart", "X1", `[{"ownercode":"B","amount":100,"purchasedAt":"d"}]`)
	assert.Nil(t, err, "validation should not be an error")
	assert.Equal(t, contract.StatusError, r.Status, "wrong status")
	assert.Equal(t, fault.ErrAllocationExceedsPrice.Error(), r.Message, "wrong message")

	r, _ = c.Find("apart", "X1")
	assert.Equal(t, int64(1000), r.Estate.Allocated(), "rejected histories were stored")
}

func TestAddHistoriesTransfer(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.AddHistories("apart", "X1", `[{"ownercode":"OwnerA","amount":-300,"purchasedAt":"2020-02-01"},{"ownercode":"B","amount":300,"purchasedAt":"2020-02-01"}]`)
	assert.Nil(t, err, "wrong add error")
	assert.True(t, r.OK(), "transfer rejected: %s", r.Message)

	r, err = c.AddHistories("apart", "X1", `[{"ownercode":"B","amount":-100,"purchasedAt":"2020-03-01"},{"ownercode":"C","amount":100,"purchasedAt":"2020-03-01"}]`)
	assert.Nil(t, err, "wrong add error")
	assert.True(t, r.OK(), "transfer rejected: %s", r.Message)

	r, _ = c.Find("apart", "X1")
	expected := []estate.History{
		{Ownercode: "OwnerA", Amount: 1000, PurchasedAt: "2020-01-01"},
		{Ownercode: "OwnerA", Amount: -300, PurchasedAt: "2020-02-01"},
		{Ownercode: "B", Amount: 300, PurchasedAt: "2020-02-01"},
		{Ownercode: "B", Amount: -100, PurchasedAt: "2020-03-01"},
		{Ownercode: "C", Amount: 100, PurchasedAt: "2020-03-01"},
	}
	assert.Equal(t, expected, r.Estate.Histories, "histories not appended in order")
	assert.Equal(t, []estate.Allocation{
		{Ownercode: "B", Amount: 200},
		{Ownercode: "C", Amount: 100},
		{Ownercode: "OwnerA", Amount: 700},
	}, r.Estate.Balances(), "wrong balances")

	// a seller cannot pass on more than it holds
	r, _ = c.AddHistories("apart", "X1", `[{"ownercode":"C","amount":-200,"purchasedAt":"2020-04-01"},{"ownercode":"D","amount":200,"purchasedAt":"2020-04-01"}]`)
	assert.Equal(t, fault.ErrNegativeBalance.Error(), r.Message, "oversold transfer accepted")
}

func TestAddHistoriesMalformed(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	tests := []string{
		``,
		`null`,
		`{"ownercode":"B","amount":0,"purchasedAt":"d"}`,
		`[{"ownercode":"B","purchasedAt":"d"}]`,
		`[{"ownercode":"B","amount":"100","purchasedAt":"d"}]`,
		`[{"ownercode":"B","amount":1.5,"purchasedAt":"d"}]`,
		`[{"ownercode":"B","amount":0,"purchasedAt":"d","extra":1}]`,
		`[7]`,
	}
	for _, histories := range tests {
		r, err := c.AddHistories("apart", "X1", histories)
		assert.Nil(t, err, "malformed input should not be an error: %q", histories)
		assert.Equal(t, fault.ErrInvalidHistories.Error(), r.Message, "wrong message for: %q", histories)
	}

	r, _ := c.Find("apart", "X1")
	assert.Equal(t, 1, len(r.Estate.Histories), "malformed histories were stored")
}

func TestAddHistoriesEmpty(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	r, err := c.AddHistories("apart", "X1", `[]`)
	assert.Nil(t, err, "wrong add error")
	assert.True(t, r.OK(), "empty histories rejected")
	assert.Equal(t, 1, len(r.Estate.Histories), "wrong history count")
}

func TestFindAll(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	r, err := c.FindAll()
	assert.Nil(t, err, "wrong find all error")
	assert.True(t, r.OK(), "wrong status")
	assert.Equal(t, 0, len(r.Estates), "empty store returned estates")

	_, _ = c.Create("B2", "O", "N", "land", "500", "50", "1", "d")
	_, _ = c.Create("A1", "O", "N", "land", "700", "70", "1", "d")
	createApart(t, c)

	r, err = c.FindAll()
	assert.Nil(t, err, "wrong find all error")
	codes := []string{}
	for _, e := range r.Estates {
		codes = append(codes, e.Category+"/"+e.Code)
	}
	assert.Equal(t, []string{"apart/X1", "land/A1", "land/B2"}, codes, "wrong estates or order")
}

func TestResultEncoding(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	r, _ := c.Find("apart", "X9")
	data, _ := json.Marshal(r)
	assert.Equal(t, `{"status":"ERROR","message":"state not found"}`, string(data), "wrong error encoding")

	createApart(t, c)
	r, _ = c.Find("apart", "X1")
	data, _ = json.Marshal(r)
	assert.Contains(t, string(data), `"status":"OK","estate":{"code":"X1"`, "wrong estate encoding")
}

func TestConcurrentCreate(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Create("X1", "OwnerA", "N", "apart", "1000", "100", "12", "2020-01-01")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	created := 0
	duplicates := 0
	for err := range results {
		switch err {
		case nil:
			created += 1
		case fault.ErrDuplicateKey:
			duplicates += 1
		}
	}
	assert.Equal(t, 1, created, "wrong number of creates")
	assert.Equal(t, n-1, duplicates, "wrong number of duplicates")
}

func TestConcurrentAddHistories(t *testing.T) {
	db, c := setup(t)
	defer db.Close()

	createApart(t, c)

	// each transfer is valid alone, together they oversell OwnerA
	const n = 6
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.AddHistories("apart", "X1", `[{"ownercode":"OwnerA","amount":-200,"purchasedAt":"d"},{"ownercode":"B","amount":200,"purchasedAt":"d"}]`)
		}()
	}
	wg.Wait()

	r, _ := c.Find("apart", "X1")
	assert.Equal(t, 11, len(r.Estate.Histories), "wrong number of accepted transfers")
	assert.Equal(t, int64(1000), r.Estate.Allocated(), "allocation changed")
	assert.Equal(t, []estate.Allocation{{Ownercode: "B", Amount: 1000}}, r.Estate.Balances(), "wrong balances")
}
