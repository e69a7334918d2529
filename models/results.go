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

package models

import (
	"fmt"

	a "github.com/aerospike/aerospike-client-go/v7"
)

// ResultStatus is the per item outcome of a batch request.
type ResultStatus int

const (
	StatusOK ResultStatus = iota
	StatusNotFound
	StatusError
)

// ResultEntry is a single item of a batch result.
type ResultEntry struct {
	// Record is set for found items of a fetch batch.
	Record  *a.Record
	Key     string
	Message string
	Status  ResultStatus
}

// ScanItem is a single record delivered by a scan or a query.
type ScanItem struct {
	Bins a.BinMap
	// PK is the lowercase hex form of the record digest.
	PK         string
	Index      int
	TTL        uint32
	Generation uint32
}

// InfoEntry is the answer of one node to an info request.
type InfoEntry struct {
	Err      error
	Host     string
	Request  string
	Response string
	Port     int
}

// JobStatus is the state of a background job on the cluster.
type JobStatus int

const (
	JobUndefined JobStatus = iota
	JobInProgress
	JobCompleted
	JobAborted
)

func (s JobStatus) String() string {
	switch s {
	case JobInProgress:
		return "in-progress"
	case JobCompleted:
		return "completed"
	case JobAborted:
		return "aborted"
	default:
		return "undefined"
	}
}

// IndexType is the data type of a secondary index.
type IndexType int

const (
	IndexInteger IndexType = 1
	IndexString  IndexType = 2
)

// Validate checks that the index type is known.
func (t IndexType) Validate() error {
	if t != IndexInteger && t != IndexString {
		return fmt.Errorf("%w: unknown index type %d", ErrInvalidArgument, t)
	}

	return nil
}

// UDFFile describes a UDF module registered on the cluster.
type UDFFile struct {
	Name    string
	Hash    string
	Type    string
	Content []byte
	Size    int
}
