// Copyright 2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package testutils

import (
	"fmt"
	"sync"

	a "github.com/aerospike/aerospike-client-go/v7"
	atypes "github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/aerospike/aslua/models"
)

// Cluster is an in memory cluster for tests. Records are keyed by their
// user key. Streams, job states and info responses are scripted.
// Cluster is safe for concurrent use.
type Cluster struct {
	mu sync.Mutex

	records map[string]*a.Record
	// BatchErrors fails batch items for the listed keys with the given code.
	BatchErrors map[string]atypes.ResultCode
	// Results is delivered by every scan and query.
	Results []*a.Result
	// Aggregates is delivered by every aggregate query.
	Aggregates []*a.Result
	// JobStates is returned by consecutive JobStatus calls. The last state
	// is repeated once the list is exhausted.
	JobStates []models.JobStatus
	// Info maps info commands to responses.
	Info map[string]string
	// Nodes is returned by RequestNodesInfo.
	Nodes []models.InfoEntry
	indexes map[string]string
	udfs    map[string][]byte

	// Err is returned by every call when set.
	Err error

	// Calls counts calls per method name.
	Calls map[string]int
	// Operations holds the operations of the last Operate call.
	Operations []*a.Operation
	// LastPolicy holds the last write policy passed in.
	LastPolicy *a.WritePolicy
	// LastScanPolicy holds the last scan policy passed in.
	LastScanPolicy *a.ScanPolicy
	// LastQueryPolicy holds the last query policy passed in.
	LastQueryPolicy *a.QueryPolicy
	// LastStatement holds the last query statement passed in.
	LastStatement *a.Statement
	// LastBins holds the bins requested by the last Get or ScanAll.
	LastBins []string
	// LastArgs holds the arguments of the last UDF call.
	LastArgs []a.Value
	// LastUDF holds module and function of the last UDF call.
	LastUDF [2]string
	// ExecuteResult is returned by Execute.
	ExecuteResult any

	closed bool
}

// NewCluster returns an empty cluster.
func NewCluster() *Cluster {
	return &Cluster{
		records: make(map[string]*a.Record),
		indexes: make(map[string]string),
		udfs:    make(map[string][]byte),
		Info:    make(map[string]string),
		Calls:   make(map[string]int),
	}
}

func (c *Cluster) call(name string) error {
	c.Calls[name]++
	return c.Err
}

// CallCount returns the number of calls of the named method.
func (c *Cluster) CallCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Calls[name]
}

// IsClosed reports whether Close was called.
func (c *Cluster) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// Record returns the stored record for pk.
func (c *Cluster) Record(pk string) (*a.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[pk]

	return rec, ok
}

// Store writes bins under pk without going through Put.
func (c *Cluster) Store(namespace, set, pk string, bins a.BinMap) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, _ := a.NewKey(namespace, set, pk)
	c.records[pk] = &a.Record{Key: key, Bins: bins, Generation: 1}
}

func userKey(key *a.Key) string {
	return key.Value().String()
}

func (c *Cluster) Put(policy *a.WritePolicy, key *a.Key, bins a.BinMap) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Put"); err != nil {
		return err
	}

	c.LastPolicy = policy
	pk := userKey(key)

	rec, ok := c.records[pk]
	if !ok {
		rec = &a.Record{Key: key, Bins: make(a.BinMap)}
		c.records[pk] = rec
	}

	for name, v := range bins {
		if v == nil {
			delete(rec.Bins, name)
			continue
		}

		rec.Bins[name] = v
	}

	rec.Generation++
	rec.Expiration = policy.Expiration

	return nil
}

func (c *Cluster) Get(_ *a.BasePolicy, key *a.Key, binNames ...string) (*a.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Get"); err != nil {
		return nil, err
	}

	c.LastBins = binNames

	rec, ok := c.records[userKey(key)]
	if !ok {
		return nil, errKeyNotFound()
	}

	out := &a.Record{Key: rec.Key, Expiration: rec.Expiration, Generation: rec.Generation, Bins: make(a.BinMap)}

	if len(binNames) == 0 {
		for k, v := range rec.Bins {
			out.Bins[k] = v
		}

		return out, nil
	}

	for _, name := range binNames {
		if v, ok := rec.Bins[name]; ok {
			out.Bins[name] = v
		}
	}

	return out, nil
}

func (c *Cluster) Exists(_ *a.BasePolicy, key *a.Key) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Exists"); err != nil {
		return false, err
	}

	_, ok := c.records[userKey(key)]

	return ok, nil
}

func (c *Cluster) Delete(_ *a.WritePolicy, key *a.Key) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Delete"); err != nil {
		return false, err
	}

	pk := userKey(key)
	if _, ok := c.records[pk]; !ok {
		return false, errKeyNotFound()
	}

	delete(c.records, pk)

	return true, nil
}

// Operate records ops and returns the stored record.
func (c *Cluster) Operate(policy *a.WritePolicy, key *a.Key, ops ...*a.Operation) (*a.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Operate"); err != nil {
		return nil, err
	}

	c.LastPolicy = policy
	c.Operations = ops

	rec, ok := c.records[userKey(key)]
	if !ok {
		rec = &a.Record{Key: key, Bins: make(a.BinMap)}
	}

	return rec, nil
}

func (c *Cluster) Execute(policy *a.WritePolicy, _ *a.Key, module, function string,
	args ...a.Value) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Execute"); err != nil {
		return nil, err
	}

	c.LastPolicy = policy
	c.LastUDF = [2]string{module, function}
	c.LastArgs = args

	return c.ExecuteResult, nil
}

func (c *Cluster) BatchOperate(_ *a.BatchPolicy, records []a.BatchRecordIfc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("BatchOperate"); err != nil {
		return err
	}

	for _, r := range records {
		br := r.BatchRec()
		pk := userKey(br.Key)

		if code, ok := c.BatchErrors[pk]; ok {
			br.ResultCode = code
			br.Err = &a.AerospikeError{ResultCode: code}

			continue
		}

		rec, ok := c.records[pk]
		if !ok {
			br.ResultCode = atypes.KEY_NOT_FOUND_ERROR
			continue
		}

		br.ResultCode = atypes.OK
		br.Record = rec
	}

	return nil
}

// ScanAll streams Results. Bins are stripped when the policy excludes bin data.
func (c *Cluster) ScanAll(policy *a.ScanPolicy, _, _ string, binNames ...string) (models.RecordStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("ScanAll"); err != nil {
		return nil, err
	}

	c.LastScanPolicy = policy
	c.LastBins = binNames

	if policy == nil || policy.IncludeBinData {
		return NewStream(c.Results), nil
	}

	headers := make([]*a.Result, len(c.Results))
	for i, res := range c.Results {
		if res.Record == nil {
			headers[i] = res
			continue
		}

		rec := *res.Record
		rec.Bins = nil
		headers[i] = &a.Result{Record: &rec, Err: res.Err}
	}

	return NewStream(headers), nil
}

func (c *Cluster) Query(policy *a.QueryPolicy, stmt *a.Statement) (models.RecordStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("Query"); err != nil {
		return nil, err
	}

	c.LastQueryPolicy = policy
	c.LastStatement = stmt

	return NewStream(c.Results), nil
}

func (c *Cluster) QueryAggregate(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
	args ...a.Value) (models.RecordStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("QueryAggregate"); err != nil {
		return nil, err
	}

	c.LastQueryPolicy = policy
	c.LastStatement = stmt
	c.LastUDF = [2]string{module, function}
	c.LastArgs = args

	return NewStream(c.Aggregates), nil
}

func (c *Cluster) QueryExecute(policy *a.QueryPolicy, writePolicy *a.WritePolicy, stmt *a.Statement,
	_ ...*a.Operation) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("QueryExecute"); err != nil {
		return 0, err
	}

	c.LastQueryPolicy = policy
	c.LastPolicy = writePolicy
	c.LastStatement = stmt

	return 42, nil
}

func (c *Cluster) ExecuteUDF(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
	args ...a.Value) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("ExecuteUDF"); err != nil {
		return 0, err
	}

	c.LastQueryPolicy = policy
	c.LastStatement = stmt
	c.LastUDF = [2]string{module, function}
	c.LastArgs = args

	return 43, nil
}

// JobStatus returns the scripted job states in order.
func (c *Cluster) JobStatus(_ uint64) (models.JobStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("JobStatus"); err != nil {
		return models.JobUndefined, err
	}

	if len(c.JobStates) == 0 {
		return models.JobCompleted, nil
	}

	n := c.Calls["JobStatus"] - 1
	if n >= len(c.JobStates) {
		n = len(c.JobStates) - 1
	}

	return c.JobStates[n], nil
}

func (c *Cluster) RequestInfo(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("RequestInfo"); err != nil {
		return "", err
	}

	resp, ok := c.Info[cmd]
	if !ok {
		return "", fmt.Errorf("no response for command %s", cmd)
	}

	return resp, nil
}

func (c *Cluster) RequestHostInfo(host string, port int, cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("RequestHostInfo"); err != nil {
		return "", err
	}

	resp, ok := c.Info[fmt.Sprintf("%s:%d:%s", host, port, cmd)]
	if !ok {
		return "", fmt.Errorf("no response for command %s", cmd)
	}

	return resp, nil
}

func (c *Cluster) RequestNodesInfo(cmd string) ([]models.InfoEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("RequestNodesInfo"); err != nil {
		return nil, err
	}

	out := make([]models.InfoEntry, len(c.Nodes))
	for i, n := range c.Nodes {
		n.Request = cmd
		out[i] = n
	}

	return out, nil
}

func (c *Cluster) CreateIndex(_ *a.WritePolicy, _, _, name, bin string, indexType models.IndexType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("CreateIndex"); err != nil {
		return err
	}

	if _, ok := c.indexes[name]; ok {
		return fmt.Errorf("sindex %s already exists", name)
	}

	c.indexes[name] = fmt.Sprintf("%s:%d", bin, indexType)

	return nil
}

func (c *Cluster) DropIndex(_ *a.WritePolicy, _, _, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("DropIndex"); err != nil {
		return err
	}

	delete(c.indexes, name)

	return nil
}

// Index returns the bin and type of the named index.
func (c *Cluster) Index(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.indexes[name]

	return idx, ok
}

func (c *Cluster) RegisterUDF(_ *a.WritePolicy, source []byte, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("RegisterUDF"); err != nil {
		return err
	}

	c.udfs[name] = source

	return nil
}

func (c *Cluster) ListUDF() ([]*models.UDFFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("ListUDF"); err != nil {
		return nil, err
	}

	out := make([]*models.UDFFile, 0, len(c.udfs))
	for name := range c.udfs {
		out = append(out, &models.UDFFile{Name: name, Type: "LUA"})
	}

	return out, nil
}

func (c *Cluster) GetUDF(name string) (*models.UDFFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("GetUDF"); err != nil {
		return nil, err
	}

	src, ok := c.udfs[name]
	if !ok {
		return nil, fmt.Errorf("udf %s not found", name)
	}

	return &models.UDFFile{Name: name, Type: "LUA", Content: src, Size: len(src)}, nil
}

func (c *Cluster) RemoveUDF(_ *a.WritePolicy, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.call("RemoveUDF"); err != nil {
		return err
	}

	if _, ok := c.udfs[name]; !ok {
		return fmt.Errorf("udf %s not found", name)
	}

	delete(c.udfs, name)

	return nil
}

func (c *Cluster) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls["Close"]++
	c.closed = true
}

func errKeyNotFound() error {
	return &a.AerospikeError{ResultCode: atypes.KEY_NOT_FOUND_ERROR}
}
