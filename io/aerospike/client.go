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

package aerospike

import (
	"fmt"
	"log/slog"

	a "github.com/aerospike/aerospike-client-go/v7"
	atypes "github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/aerospike/aslua/internal/asinfo"
	"github.com/aerospike/aslua/models"
)

// dbClient is the part of the Aerospike Go client used by Client.
// The Aerospike Go client satisfies this interface.
//
//go:generate mockery --name dbClient
type dbClient interface {
	Put(policy *a.WritePolicy, key *a.Key, bins a.BinMap) a.Error
	Get(policy *a.BasePolicy, key *a.Key, binNames ...string) (*a.Record, a.Error)
	Exists(policy *a.BasePolicy, key *a.Key) (bool, a.Error)
	Delete(policy *a.WritePolicy, key *a.Key) (bool, a.Error)
	Operate(policy *a.WritePolicy, key *a.Key, operations ...*a.Operation) (*a.Record, a.Error)
	Execute(policy *a.WritePolicy, key *a.Key, packageName, functionName string,
		args ...a.Value) (interface{}, a.Error)
	BatchOperate(policy *a.BatchPolicy, records []a.BatchRecordIfc) a.Error
	ScanAll(policy *a.ScanPolicy, namespace, setName string, binNames ...string) (*a.Recordset, a.Error)
	Query(policy *a.QueryPolicy, statement *a.Statement) (*a.Recordset, a.Error)
	QueryAggregate(policy *a.QueryPolicy, statement *a.Statement, packageName, functionName string,
		functionArgs ...a.Value) (*a.Recordset, a.Error)
	QueryExecute(policy *a.QueryPolicy, writePolicy *a.WritePolicy, statement *a.Statement,
		ops ...*a.Operation) (*a.ExecuteTask, a.Error)
	ExecuteUDF(policy *a.QueryPolicy, statement *a.Statement, packageName, functionName string,
		functionArgs ...a.Value) (*a.ExecuteTask, a.Error)
	CreateIndex(policy *a.WritePolicy, namespace, setName, indexName, binName string,
		indexType a.IndexType) (*a.IndexTask, a.Error)
	DropIndex(policy *a.WritePolicy, namespace, setName, indexName string) a.Error
	RegisterUDF(policy *a.WritePolicy, udfBody []byte, serverPath string,
		language a.Language) (*a.RegisterTask, a.Error)
	RemoveUDF(policy *a.WritePolicy, udfName string) (*a.RemoveTask, a.Error)
	Close()
}

// infoClient runs info commands against the cluster.
//
//go:generate mockery --name infoClient
type infoClient interface {
	Request(cmd string) (string, error)
	GetNodesInfo(cmd string) ([]models.InfoEntry, error)
	GetJobStatus(taskID uint64) (models.JobStatus, error)
	GetUDF(name string) (*models.UDFFile, error)
	GetUDFs() ([]*models.UDFFile, error)
}

// Client adapts *aerospike.Client to the operation set used by the Lua
// binding. Aerospike errors are returned as plain errors, nil when the
// call succeeded.
type Client struct {
	client   dbClient
	info     infoClient
	hostInfo hostInfoFactory
	logger   *slog.Logger
}

// NewClient wraps an Aerospike client. The client policy is used for info
// requests addressed to a specific host.
func NewClient(client *a.Client, clientPolicy *a.ClientPolicy, infoPolicy *a.InfoPolicy,
	logger *slog.Logger) *Client {
	return &Client{
		client:   client,
		info:     asinfo.NewInfoClientFromAerospike(client, infoPolicy),
		hostInfo: newHostInfoFactory(clientPolicy, logger),
		logger:   logger,
	}
}

func (c *Client) Put(policy *a.WritePolicy, key *a.Key, bins a.BinMap) error {
	if aerr := c.client.Put(policy, key, bins); aerr != nil {
		return aerr
	}

	return nil
}

func (c *Client) Get(policy *a.BasePolicy, key *a.Key, binNames ...string) (*a.Record, error) {
	rec, aerr := c.client.Get(policy, key, binNames...)
	if aerr != nil {
		return nil, aerr
	}

	return rec, nil
}

func (c *Client) Exists(policy *a.BasePolicy, key *a.Key) (bool, error) {
	found, aerr := c.client.Exists(policy, key)
	if aerr != nil {
		return false, aerr
	}

	return found, nil
}

func (c *Client) Delete(policy *a.WritePolicy, key *a.Key) (bool, error) {
	existed, aerr := c.client.Delete(policy, key)
	if aerr != nil {
		return false, aerr
	}

	return existed, nil
}

func (c *Client) Operate(policy *a.WritePolicy, key *a.Key, ops ...*a.Operation) (*a.Record, error) {
	rec, aerr := c.client.Operate(policy, key, ops...)
	if aerr != nil {
		return nil, aerr
	}

	return rec, nil
}

func (c *Client) Execute(policy *a.WritePolicy, key *a.Key, module, function string,
	args ...a.Value) (any, error) {
	res, aerr := c.client.Execute(policy, key, module, function, args...)
	if aerr != nil {
		return nil, aerr
	}

	return res, nil
}

// BatchOperate runs the batch. Per record outcomes are reported in the
// records themselves; the returned error covers the batch as a whole.
func (c *Client) BatchOperate(policy *a.BatchPolicy, records []a.BatchRecordIfc) error {
	if aerr := c.client.BatchOperate(policy, records); aerr != nil {
		return aerr
	}

	return nil
}

func (c *Client) ScanAll(policy *a.ScanPolicy, namespace, set string,
	binNames ...string) (models.RecordStream, error) {
	rs, aerr := c.client.ScanAll(policy, namespace, set, binNames...)
	if aerr != nil {
		return nil, aerr
	}

	return newRecordStream(rs), nil
}

func (c *Client) Query(policy *a.QueryPolicy, stmt *a.Statement) (models.RecordStream, error) {
	rs, aerr := c.client.Query(policy, stmt)
	if aerr != nil {
		return nil, aerr
	}

	return newRecordStream(rs), nil
}

func (c *Client) QueryAggregate(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
	args ...a.Value) (models.RecordStream, error) {
	rs, aerr := c.client.QueryAggregate(policy, stmt, module, function, args...)
	if aerr != nil {
		return nil, aerr
	}

	return newRecordStream(rs), nil
}

// QueryExecute starts a background job applying ops to every record
// matched by stmt and returns the job id.
func (c *Client) QueryExecute(policy *a.QueryPolicy, writePolicy *a.WritePolicy, stmt *a.Statement,
	ops ...*a.Operation) (uint64, error) {
	task, aerr := c.client.QueryExecute(policy, writePolicy, stmt, ops...)
	if aerr != nil {
		return 0, aerr
	}

	if task == nil {
		return 0, fmt.Errorf("background job: task is nil")
	}

	return task.TaskId(), nil
}

// ExecuteUDF starts a background job applying a record UDF to every
// record matched by stmt and returns the job id.
func (c *Client) ExecuteUDF(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
	args ...a.Value) (uint64, error) {
	task, aerr := c.client.ExecuteUDF(policy, stmt, module, function, args...)
	if aerr != nil {
		return 0, aerr
	}

	if task == nil {
		return 0, fmt.Errorf("background udf job: task is nil")
	}

	return task.TaskId(), nil
}

func (c *Client) JobStatus(taskID uint64) (models.JobStatus, error) {
	return c.info.GetJobStatus(taskID)
}

// RequestInfo runs an info command on a random node.
func (c *Client) RequestInfo(cmd string) (string, error) {
	return c.info.Request(cmd)
}

// RequestHostInfo runs an info command on the given host.
func (c *Client) RequestHostInfo(host string, port int, cmd string) (string, error) {
	resp, err := c.hostInfo(a.NewHost(host, port)).RequestInfo(cmd)
	if err != nil {
		return "", fmt.Errorf("info request to %s:%d failed: %w", host, port, err)
	}

	v, ok := resp[cmd]
	if !ok {
		return "", fmt.Errorf("no response for command %s", cmd)
	}

	return v, nil
}

// RequestNodesInfo runs an info command on every node of the cluster.
func (c *Client) RequestNodesInfo(cmd string) ([]models.InfoEntry, error) {
	return c.info.GetNodesInfo(cmd)
}

// CreateIndex creates a secondary index and waits for it to be built.
func (c *Client) CreateIndex(policy *a.WritePolicy, namespace, set, name, bin string,
	indexType models.IndexType) error {
	var sindexType a.IndexType

	switch indexType {
	case models.IndexInteger:
		sindexType = a.NUMERIC
	case models.IndexString:
		sindexType = a.STRING
	default:
		return fmt.Errorf("%w: invalid sindex type %d", models.ErrInvalidArgument, indexType)
	}

	job, aerr := c.client.CreateIndex(policy, namespace, set, name, bin, sindexType)
	if aerr != nil {
		if aerr.Matches(atypes.INDEX_FOUND) {
			return fmt.Errorf("sindex %s already exists: %w", name, aerr)
		}

		return fmt.Errorf("error creating sindex %s: %w", name, aerr)
	}

	if job == nil {
		return fmt.Errorf("error creating sindex %s: job is nil", name)
	}

	if err := waitTask(job.OnComplete()); err != nil {
		return fmt.Errorf("error creating sindex %s: %w", name, err)
	}

	c.logger.Debug("created sindex", slog.String("sindex", name))

	return nil
}

func (c *Client) DropIndex(policy *a.WritePolicy, namespace, set, name string) error {
	if aerr := c.client.DropIndex(policy, namespace, set, name); aerr != nil {
		return fmt.Errorf("error dropping sindex %s: %w", name, aerr)
	}

	return nil
}

// RegisterUDF registers a Lua module and waits until every node has it.
func (c *Client) RegisterUDF(policy *a.WritePolicy, source []byte, name string) error {
	job, aerr := c.client.RegisterUDF(policy, source, name, a.LUA)
	if aerr != nil {
		return fmt.Errorf("error registering UDF %s: %w", name, aerr)
	}

	if job == nil {
		return fmt.Errorf("error registering UDF %s: job is nil", name)
	}

	if err := waitTask(job.OnComplete()); err != nil {
		return fmt.Errorf("error registering UDF %s: %w", name, err)
	}

	c.logger.Debug("registered UDF", slog.String("name", name))

	return nil
}

// RemoveUDF removes a Lua module and waits until every node dropped it.
func (c *Client) RemoveUDF(policy *a.WritePolicy, name string) error {
	job, aerr := c.client.RemoveUDF(policy, name)
	if aerr != nil {
		return fmt.Errorf("error removing UDF %s: %w", name, aerr)
	}

	if job == nil {
		return fmt.Errorf("error removing UDF %s: job is nil", name)
	}

	if err := waitTask(job.OnComplete()); err != nil {
		return fmt.Errorf("error removing UDF %s: %w", name, err)
	}

	c.logger.Debug("removed UDF", slog.String("name", name))

	return nil
}

func (c *Client) ListUDF() ([]*models.UDFFile, error) {
	return c.info.GetUDFs()
}

func (c *Client) GetUDF(name string) (*models.UDFFile, error) {
	return c.info.GetUDF(name)
}

func (c *Client) Close() {
	c.client.Close()
}

// waitTask blocks until a cluster side job reports completion.
func waitTask(errs chan a.Error) error {
	if errs == nil {
		return fmt.Errorf("OnComplete returned nil channel")
	}

	if err := <-errs; err != nil {
		return err
	}

	return nil
}
