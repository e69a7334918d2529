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
	"context"
	"fmt"
	"time"

	a "github.com/aerospike/aerospike-client-go/v7"
	atypes "github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// BatchGet reads every bin of the records stored under pks.
// Records that do not exist are left out of the result. Items that failed
// are reported with [models.StatusError] and the error message.
func (c *Context) BatchGet(ctx context.Context, pks []string) (entries []models.ResultEntry, err error) {
	defer c.client.track(c.logger, logging.OperationTypeBatchGet, time.Now(), &err)

	return c.batch(ctx, pks, false, logging.OperationTypeBatchGet)
}

// BatchExists reports for every key in pks whether a record is stored
// under it. Every distinct key appears exactly once in the result.
func (c *Context) BatchExists(ctx context.Context, pks []string) (entries []models.ResultEntry, err error) {
	defer c.client.track(c.logger, logging.OperationTypeBatchExists, time.Now(), &err)

	return c.batch(ctx, pks, true, logging.OperationTypeBatchExists)
}

func (c *Context) batch(ctx context.Context, pks []string, existence bool,
	op logging.OperationType) ([]models.ResultEntry, error) {
	if len(pks) == 0 {
		return nil, fmt.Errorf("%w: key list is empty", models.ErrInvalidArgument)
	}

	if err := c.client.acquire(ctx); err != nil {
		return nil, err
	}

	records := make([]a.BatchRecordIfc, 0, len(pks))

	for _, pk := range pks {
		key, err := c.key(pk)
		if err != nil {
			return nil, err
		}

		if existence {
			records = append(records, a.NewBatchReadHeader(nil, key))
		} else {
			records = append(records, a.NewBatchRead(nil, key, nil))
		}
	}

	if err := c.client.cluster.BatchOperate(c.client.policies.Batch, records); err != nil {
		return nil, fmt.Errorf("failed to run batch of %d keys: %w", len(pks), err)
	}

	collector := newBatchCollector(existence, len(pks))
	for i, rec := range records {
		collector.collect(pks[i], rec.BatchRec())
	}

	c.client.metrics.AddRecords(string(op), len(collector.entries))

	return collector.result(), nil
}

// batchCollector turns per key batch outcomes into result entries.
// Repeated keys keep the position of their first occurrence and the
// outcome of their last one.
type batchCollector struct {
	index     map[string]int
	entries   []models.ResultEntry
	existence bool
}

func newBatchCollector(existence bool, size int) *batchCollector {
	return &batchCollector{
		index:     make(map[string]int, size),
		entries:   make([]models.ResultEntry, 0, size),
		existence: existence,
	}
}

func (bc *batchCollector) collect(pk string, rec *a.BatchRecord) {
	entry := models.ResultEntry{Key: pk}

	switch {
	case rec == nil:
		entry.Status = models.StatusError
		entry.Message = "no result"
	case rec.ResultCode == atypes.OK:
		entry.Status = models.StatusOK
		if !bc.existence {
			entry.Record = rec.Record
		}
	case rec.ResultCode == atypes.KEY_NOT_FOUND_ERROR:
		entry.Status = models.StatusNotFound
	default:
		entry.Status = models.StatusError
		if rec.Err != nil {
			entry.Message = rec.Err.Error()
		} else {
			entry.Message = atypes.ResultCodeToString(rec.ResultCode)
		}
	}

	if i, ok := bc.index[pk]; ok {
		bc.entries[i] = entry
		return
	}

	bc.index[pk] = len(bc.entries)
	bc.entries = append(bc.entries, entry)
}

// result returns the collected entries. Fetch results leave out records
// that were not found.
func (bc *batchCollector) result() []models.ResultEntry {
	if bc.existence {
		return bc.entries
	}

	out := bc.entries[:0:0]
	for _, e := range bc.entries {
		if e.Status != models.StatusNotFound {
			out = append(out, e)
		}
	}

	return out
}
