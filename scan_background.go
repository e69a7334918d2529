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
	"log/slog"
	"time"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// BackgroundOptions configures a background scan.
type BackgroundOptions struct {
	// UDF is applied to every record. When nil every record is touched.
	UDF *models.UDFCall
	// RecordsPerSecond throttles the job on the server. Zero means no limit.
	RecordsPerSecond int
}

// ScanBackground starts a server side job over every record of the set and
// waits until it ends. It returns true when the job completed and false
// when the job was aborted or its state could not be determined.
func (c *Context) ScanBackground(ctx context.Context, opts BackgroundOptions) (done bool, err error) {
	defer c.client.track(c.logger, logging.OperationTypeScanBackground, time.Now(), &err)

	if opts.RecordsPerSecond < 0 {
		return false, fmt.Errorf("%w: records per second must be non-negative", models.ErrInvalidArgument)
	}

	if err = opts.UDF.Validate(); err != nil {
		return false, err
	}

	if err = c.client.acquire(ctx); err != nil {
		return false, err
	}

	taskID, err := c.submitBackground(opts)
	if err != nil {
		return false, err
	}

	logger := logging.WithOperation(c.logger, newOperationID(), logging.OperationTypeScanBackground).
		With(slog.Uint64("task", taskID))
	logger.Debug("background job started")

	return c.client.waitJob(ctx, logger, taskID)
}

func (c *Context) submitBackground(opts BackgroundOptions) (uint64, error) {
	stmt := a.NewStatement(c.namespace, c.set)

	policy := c.client.policies.queryPolicy()
	policy.RecordsPerSecond = opts.RecordsPerSecond

	if opts.UDF != nil {
		taskID, err := c.client.cluster.ExecuteUDF(policy, stmt,
			opts.UDF.Module, opts.UDF.Function, toValues(opts.UDF.Args)...)
		if err != nil {
			return 0, fmt.Errorf("failed to start background udf %s.%s: %w",
				opts.UDF.Module, opts.UDF.Function, err)
		}

		return taskID, nil
	}

	taskID, err := c.client.cluster.QueryExecute(policy, c.client.policies.Write, stmt, a.TouchOp())
	if err != nil {
		return 0, fmt.Errorf("failed to start background touch: %w", err)
	}

	return taskID, nil
}

// waitJob polls the job status with growing delays until the job leaves
// the in progress state or ctx is done.
func (c *Client) waitJob(ctx context.Context, logger *slog.Logger, taskID uint64) (bool, error) {
	for attempt := 0; ; attempt++ {
		if err := c.checkOpen(); err != nil {
			return false, err
		}

		status, err := c.cluster.JobStatus(taskID)
		c.metrics.IncJobPolls()

		if err != nil {
			return false, fmt.Errorf("failed to get status of job %d: %w", taskID, err)
		}

		switch status {
		case models.JobInProgress:
			if err := sleep(ctx, c.policies.Poll.Delay(attempt)); err != nil {
				return false, err
			}
		case models.JobCompleted:
			logger.Debug("background job completed", slog.Int("polls", attempt+1))
			return true, nil
		default:
			logger.Warn("background job did not complete", slog.String("status", status.String()))
			return false, nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
