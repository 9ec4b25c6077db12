// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package estates

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/buger/jsonparser"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/estatenet/estated/contract"
	"github.com/estatenet/estated/rpc/ratelimit"
)

const (
	rateLimitEstates = 200
	rateBurstEstates = 100

	// each record of an AddHistories call costs one request slot
	maximumHistories = rateBurstEstates
)

// outcome labels
const (
	outcomeFail = "fail"
)

var (
	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estated_rpc_requests_total",
			Help: "Estate RPC requests by method and outcome.",
		},
		[]string{"method", "outcome"},
	)
	duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estated_rpc_duration_seconds",
			Help:    "Estate RPC processing time.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(requests, duration)
}

// Contract - the estate operations
type Contract interface {
	Create(code string, ownercode string, name string, category string, price string, unit string, devideTerm string, establishedAt string) (*contract.Result, error)
	AddHistories(category string, code string, histories string) (*contract.Result, error)
	Find(category string, code string) (*contract.Result, error)
	FindAll() (*contract.Result, error)
}

// Estates - type for RPC calls
type Estates struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Contract Contract
}

// New - RPC handler for estate operations
func New(log *logger.L, c Contract) *Estates {
	return &Estates{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitEstates, rateBurstEstates),
		Contract: c,
	}
}

// ---

// CreateArguments - arguments for Create
//
// numbers are decimal strings
type CreateArguments struct {
	Code          string `json:"code"`
	Ownercode     string `json:"ownercode"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	Unit          string `json:"unit"`
	DevideTerm    string `json:"devideTerm"`
	EstablishedAt string `json:"establishedAt"`
}

// Create - register a new estate
func (e *Estates) Create(arguments *CreateArguments, reply *contract.Result) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	e.Log.Infof("Create: %s/%s", arguments.Category, arguments.Code)

	start := time.Now()
	result, err := e.Contract.Create(
		arguments.Code,
		arguments.Ownercode,
		arguments.Name,
		arguments.Category,
		arguments.Price,
		arguments.Unit,
		arguments.DevideTerm,
		arguments.EstablishedAt,
	)
	return e.respond("Create", start, result, err, reply)
}

// ---

// AddHistoriesArguments - arguments for AddHistories
type AddHistoriesArguments struct {
	Category  string          `json:"category"`
	Code      string          `json:"code"`
	Histories json.RawMessage `json:"histories"`
}

// AddHistories - append allocation records to an estate
func (e *Estates) AddHistories(arguments *AddHistoriesArguments, reply *contract.Result) error {

	count := historyCount(arguments.Histories)
	if count <= 1 {
		if err := ratelimit.Limit(e.Limiter); nil != err {
			return err
		}
	} else if err := ratelimit.LimitN(e.Limiter, count, maximumHistories); nil != err {
		return err
	}

	e.Log.Infof("AddHistories: %s/%s  records: %d", arguments.Category, arguments.Code, count)

	start := time.Now()
	result, err := e.Contract.AddHistories(arguments.Category, arguments.Code, string(arguments.Histories))
	return e.respond("AddHistories", start, result, err, reply)
}

// number of elements in a JSON array, zero if not an array
func historyCount(histories json.RawMessage) int {
	n := 0
	_, err := jsonparser.ArrayEach(histories, func([]byte, jsonparser.ValueType, int, error) {
		n += 1
	})
	if nil != err {
		return 0
	}
	return n
}

// ---

// FindArguments - arguments for Find
type FindArguments struct {
	Category string `json:"category"`
	Code     string `json:"code"`
}

// Find - fetch one estate
func (e *Estates) Find(arguments *FindArguments, reply *contract.Result) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	e.Log.Debugf("Find: %s/%s", arguments.Category, arguments.Code)

	start := time.Now()
	result, err := e.Contract.Find(arguments.Category, arguments.Code)
	return e.respond("Find", start, result, err, reply)
}

// ---

// FindAllArguments - empty arguments for FindAll
type FindAllArguments struct{}

// FindAll - fetch every estate
func (e *Estates) FindAll(_ *FindAllArguments, reply *contract.Result) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	e.Log.Debug("FindAll")

	start := time.Now()
	result, err := e.Contract.FindAll()
	return e.respond("FindAll", start, result, err, reply)
}

// record the outcome and fill in the reply
func (e *Estates) respond(method string, start time.Time, result *contract.Result, err error, reply *contract.Result) error {
	duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if nil != err {
		requests.WithLabelValues(method, outcomeFail).Inc()
		e.Log.Errorf("%s: error: %s", method, err)
		return err
	}

	requests.WithLabelValues(method, strings.ToLower(result.Status)).Inc()
	if !result.OK() {
		e.Log.Debugf("%s: rejected: %s", method, result.Message)
	}

	*reply = *result
	return nil
}
