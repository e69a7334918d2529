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


package aslua

import (
	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
)

// Cluster describes the cluster operations the client needs, for easy mocking.
// The io/aerospike package provides the implementation backed by the
// Aerospike Go client; tests use the scripted cluster in internal/testutils.
type Cluster interface {
	Put(policy *a.WritePolicy, key *a.Key, bins a.BinMap) error
	Get(policy *a.BasePolicy, key *a.Key, binNames ...string) (*a.Record, error)
	Exists(policy *a.BasePolicy, key *a.Key) (bool, error)
	Delete(policy *a.WritePolicy, key *a.Key) (bool, error)
	Operate(policy *a.WritePolicy, key *a.Key, ops ...*a.Operation) (*a.Record, error)
	Execute(policy *a.WritePolicy, key *a.Key, module, function string, args ...a.Value) (any, error)
	BatchOperate(policy *a.BatchPolicy, records []a.BatchRecordIfc) error
	ScanAll(policy *a.ScanPolicy, namespace, set string, binNames ...string) (models.RecordStream, error)
	Query(policy *a.QueryPolicy, stmt *a.Statement) (models.RecordStream, error)
	QueryAggregate(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
		args ...a.Value) (models.RecordStream, error)
	QueryExecute(policy *a.QueryPolicy, writePolicy *a.WritePolicy, stmt *a.Statement,
		ops ...*a.Operation) (uint64, error)
	ExecuteUDF(policy *a.QueryPolicy, stmt *a.Statement, module, function string,
		args ...a.Value) (uint64, error)
	JobStatus(taskID uint64) (models.JobStatus, error)
	RequestInfo(cmd string) (string, error)
	RequestHostInfo(host string, port int, cmd string) (string, error)
	RequestNodesInfo(cmd string) ([]models.InfoEntry, error)
	CreateIndex(policy *a.WritePolicy, namespace, set, name, bin string, indexType models.IndexType) error
	DropIndex(policy *a.WritePolicy, namespace, set, name string) error
	RegisterUDF(policy *a.WritePolicy, source []byte, name string) error
	ListUDF() ([]*models.UDFFile, error)
	GetUDF(name string) (*models.UDFFile, error)
	RemoveUDF(policy *a.WritePolicy, name string) error
	Close()
}
