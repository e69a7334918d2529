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
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/internal/metrics"
	"github.com/aerospike/aslua/models"
)

// ScanOptions configures a foreground scan.
type ScanOptions struct {
	// Bins lists the bins to return. Empty means headers only: items carry
	// digest, TTL and generation without bins.
	Bins []string
	// MaxRecords caps the number of returned records. Zero means no cap.
	MaxRecords int64
	// RecordsPerSecond throttles the scan on the server. Zero means no limit.
	RecordsPerSecond int
}

func (o *ScanOptions) validate() error {
	if err := models.ValidateBinCount(len(o.Bins)); err != nil {
		return err
	}

	for _, bin := range o.Bins {
		if err := models.ValidateBinName(bin); err != nil {
			return err
		}
	}

	if o.MaxRecords < 0 {
		return fmt.Errorf("%w: max records must be non-negative", models.ErrInvalidArgument)
	}

	if o.RecordsPerSecond < 0 {
		return fmt.Errorf("%w: records per second must be non-negative", models.ErrInvalidArgument)
	}

	return nil
}

// ScanEach reads every record of the set and returns them in arrival order.
// Items are numbered from 1; the primary key of every item is the hex
// form of its digest.
func (c *Context) ScanEach(ctx context.Context, opts ScanOptions) (items []models.ScanItem, err error) {
	defer c.client.track(c.logger, logging.OperationTypeScan, time.Now(), &err)

	if err = opts.validate(); err != nil {
		return nil, err
	}

	release, err := c.client.acquireScan(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	policy := c.client.policies.scanPolicy()
	policy.IncludeBinData = len(opts.Bins) > 0
	policy.MaxRecords = opts.MaxRecords
	policy.RecordsPerSecond = opts.RecordsPerSecond

	stream, err := c.client.cluster.ScanAll(policy, c.namespace, c.set, opts.Bins...)
	if err != nil {
		return nil, fmt.Errorf("failed to start scan: %w", err)
	}

	collector := &scanCollector{}

	logger := logging.WithOperation(c.logger, newOperationID(), logging.OperationTypeScan)
	if err = c.drain(ctx, logger, logging.OperationTypeScan, stream, collector.collect); err != nil {
		return nil, err
	}

	return collector.items, nil
}

// scanCollector numbers streamed records in arrival order.
type scanCollector struct {
	items []models.ScanItem
}

func (sc *scanCollector) collect(rec *a.Record) error {
	if rec.Key == nil {
		return fmt.Errorf("%w: record without key", models.ErrIteration)
	}

	item := models.ScanItem{
		PK:         hex.EncodeToString(rec.Key.Digest()),
		Index:      len(sc.items) + 1,
		TTL:        rec.Expiration,
		Generation: rec.Generation,
	}

	if len(rec.Bins) > 0 {
		item.Bins = rec.Bins
	}

	sc.items = append(sc.items, item)

	return nil
}

// drain reads stream until it is exhausted, collect fails or ctx is done.
// The stream is always closed.
func (c *Context) drain(ctx context.Context, logger *slog.Logger, op logging.OperationType,
	stream models.RecordStream, collect func(*a.Record) error) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rps := metrics.NewRecordsCollector(ctx, logger)

	var count int

	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close stream: %w", cerr)
		}

		c.client.metrics.AddRecords(string(op), count)
		logger.Debug("stream finished", slog.Int("records", count))
	}()

	results := stream.Results()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil
			}

			if res == nil {
				continue
			}

			if res.Err != nil {
				return fmt.Errorf("%w: %w", models.ErrIteration, res.Err)
			}

			if res.Record == nil {
				return fmt.Errorf("%w: empty result", models.ErrIteration)
			}

			if err := collect(res.Record); err != nil {
				return err
			}

			count++

			rps.Increment()
		}
	}
}
