// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estate

import (
	"math"
	"sort"

	"github.com/estatenet/estated/fault"
)

// Allocation - amount held or moved by one owner
type Allocation struct {
	Ownercode string `json:"ownercode"`
	Amount    int64  `json:"amount"`
}

// Purchase - the records sharing one purchase date
type Purchase struct {
	PurchasedAt string       `json:"purchasedAt"`
	Allocations []Allocation `json:"allocations"`
}

// Allocated - sum of all history amounts
func (e Estate) Allocated() int64 {
	total := int64(0)
	for _, h := range e.Histories {
		total = saturatingAdd(total, h.Amount)
	}
	return total
}

// Remaining - price not yet allocated
func (e Estate) Remaining() int64 {
	allocated := e.Allocated()
	if math.MinInt64 == allocated {
		return math.MaxInt64
	}
	return saturatingAdd(e.Price, -allocated)
}

// MaxUnits - number of units the price divides into
func (e Estate) MaxUnits() int64 {
	if e.Unit <= 0 {
		return 0
	}
	return e.Price / e.Unit
}

// ByPurchaseDate - history grouped by purchase date in order of first appearance
func (e Estate) ByPurchaseDate() []Purchase {
	purchases := []Purchase{}
	index := make(map[string]int)
	for _, h := range e.Histories {
		i, ok := index[h.PurchasedAt]
		if !ok {
			i = len(purchases)
			index[h.PurchasedAt] = i
			purchases = append(purchases, Purchase{
				PurchasedAt: h.PurchasedAt,
				Allocations: []Allocation{},
			})
		}
		purchases[i].Allocations = append(purchases[i].Allocations, Allocation{
			Ownercode: h.Ownercode,
			Amount:    h.Amount,
		})
	}
	return purchases
}

// Balances - net amount held by each owner, sorted by owner code
//
// owners whose balance has returned to zero are omitted
func (e Estate) Balances() []Allocation {
	held := make(map[string]int64)
	for _, h := range e.Histories {
		held[h.Ownercode] = saturatingAdd(held[h.Ownercode], h.Amount)
	}

	balances := make([]Allocation, 0, len(held))
	for owner, amount := range held {
		if 0 == amount {
			continue
		}
		balances = append(balances, Allocation{
			Ownercode: owner,
			Amount:    amount,
		})
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Ownercode < balances[j].Ownercode
	})
	return balances
}

// Validate - check that appending proposed records keeps the estate consistent
//
// existing and proposed records are checked together, in order; a debit
// with no matching credit returns units to the unallocated remainder
func (e Estate) Validate(proposed []History) error {
	combined := make([]History, 0, len(e.Histories)+len(proposed))
	combined = append(combined, e.Histories...)
	combined = append(combined, proposed...)

	if e.Unit <= 0 {
		return fault.ErrInvalidUnit
	}
	for _, h := range combined {
		if 0 == h.Amount {
			return fault.ErrZeroAmount
		}
		if 0 != h.Amount%e.Unit {
			return fault.ErrAmountNotUnitAligned
		}
		// price is positive so its negation cannot overflow
		if h.Amount > e.Price || h.Amount < -e.Price {
			return fault.ErrAllocationExceedsPrice
		}
	}

	total := int64(0)
	for _, h := range combined {
		sum, ok := checkedAdd(total, h.Amount)
		if !ok || sum > e.Price {
			return fault.ErrAllocationExceedsPrice
		}
		total = sum
	}

	held := make(map[string]int64)
	for _, h := range combined {
		balance, ok := checkedAdd(held[h.Ownercode], h.Amount)
		if !ok || balance > e.Price {
			return fault.ErrAllocationExceedsPrice
		}
		if balance < 0 {
			return fault.ErrNegativeBalance
		}
		held[h.Ownercode] = balance
	}
	return nil
}

// checkedAdd - a + b, false if the sum does not fit in an int64
func checkedAdd(a int64, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func saturatingAdd(a int64, b int64) int64 {
	sum, ok := checkedAdd(a, b)
	if ok {
		return sum
	}
	if b > 0 {
		return math.MaxInt64
	}
	return math.MinInt64
}
