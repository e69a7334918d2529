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
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/internal/metrics"
	"github.com/aerospike/aslua/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Client is the main entry point for the aslua package.
// It wraps a cluster connection and hands out namespace and set scoped
// [Context] values that run the record operations.
// Example usage:
//
//	asc, aerr := a.NewClientWithPolicy(...)	// create an aerospike client
//	if aerr != nil {
//		// handle error
//	}
//
//	client, err := aslua.NewClient(aerospike.NewClient(asc, cp, ip, logger), aslua.WithID("id"))
//	if err != nil {
//		// handle error
//	}
//
//	c, err := client.Context("test", "demo")
//	if err != nil {
//		// handle error
//	}
//
//	rec, err := c.Get(ctx, "pk")
type Client struct {
	cluster     Cluster
	logger      *slog.Logger
	policies    *Policies
	registerer  prometheus.Registerer
	metrics     *metrics.Operations
	limiter     *rate.Limiter
	scanLimiter *semaphore.Weighted
	id          string
	closed      atomic.Bool
}

// ClientOpt is a functional option that allows configuring the [Client].
type ClientOpt func(*Client)

// WithID sets the ID for the [Client].
// This ID is used for logging purposes.
func WithID(id string) ClientOpt {
	return func(c *Client) {
		c.id = id
	}
}

// WithLogger sets the logger for the [Client].
func WithLogger(logger *slog.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPolicies sets the command policies for the [Client].
func WithPolicies(p *Policies) ClientOpt {
	return func(c *Client) {
		c.policies = p
	}
}

// WithPollPolicy sets the delays between status checks of background jobs.
func WithPollPolicy(rp *models.RetryPolicy) ClientOpt {
	return func(c *Client) {
		if c.policies == nil {
			c.policies = &Policies{}
		}

		c.policies.Poll = rp
	}
}

// WithMetrics registers operation metrics in reg. They are unregistered
// when the client is closed.
func WithMetrics(reg prometheus.Registerer) ClientOpt {
	return func(c *Client) {
		c.registerer = reg
	}
}

// WithOpsLimit limits the number of commands sent per second.
// Zero or a negative value means no limit.
func WithOpsLimit(opsPerSecond int) ClientOpt {
	return func(c *Client) {
		if opsPerSecond <= 0 {
			c.limiter = nil
			return
		}

		c.limiter = rate.NewLimiter(rate.Limit(opsPerSecond), opsPerSecond)
	}
}

// WithRateLimiter sets a limiter shared with other clients. It replaces the
// limiter created by [WithOpsLimit].
func WithRateLimiter(l *rate.Limiter) ClientOpt {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithScanLimiter sets the semaphore that limits the number of concurrent
// scans and queries.
func WithScanLimiter(sem *semaphore.Weighted) ClientOpt {
	return func(c *Client) {
		c.scanLimiter = sem
	}
}

// NewClient creates a new client.
//   - cluster is the cluster connection every operation goes through.
//
// options:
//   - [WithID] to set an identifier for the client.
//   - [WithLogger] to set a logger that this client will log to.
//   - [WithPolicies] to override command policies.
//   - [WithMetrics] to expose operation metrics.
//   - [WithOpsLimit] or [WithRateLimiter] to throttle commands.
//   - [WithScanLimiter] to limit concurrent scans and queries.
func NewClient(cluster Cluster, opts ...ClientOpt) (*Client, error) {
	if cluster == nil {
		return nil, errors.New("cluster is nil")
	}

	client := &Client{
		cluster: cluster,
		logger:  slog.Default(),
		// #nosec G404
		id: strconv.Itoa(rand.Intn(1000)),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.policies = client.policies.withDefaults()
	if err := client.policies.validate(); err != nil {
		return nil, err
	}

	if client.registerer != nil {
		client.metrics = metrics.NewOperations(client.registerer)
	}

	client.logger = client.logger.WithGroup("aslua")
	client.logger = logging.WithClient(client.logger, client.id)

	return client, nil
}

// Context returns an operation context bound to namespace and set.
// An empty set addresses records stored outside of any set.
func (c *Client) Context(namespace, set string) (*Context, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	if err := models.ValidateNamespace(namespace, set); err != nil {
		return nil, err
	}

	return newContext(c, namespace, set), nil
}

// Close closes the cluster connection. It is safe to call Close more
// than once; every later operation fails with [models.ErrClosed].
func (c *Client) Close() {
	if c.closed.Swap(true) {
		return
	}

	c.cluster.Close()
	c.metrics.Unregister()
	c.logger.Debug("client closed")
}

// IsClosed reports whether Close was called.
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}

func (c *Client) checkOpen() error {
	if c.closed.Load() {
		return models.ErrClosed
	}

	return nil
}

// acquire waits for the rate limiter and fails when the client is closed
// or ctx is done.
func (c *Client) acquire(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("ops limit: %w", err)
		}

		return nil
	}

	return ctx.Err()
}

// acquireScan reserves a scan slot. The returned function releases it.
func (c *Client) acquireScan(ctx context.Context) (func(), error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}

	if c.scanLimiter == nil {
		return func() {}, nil
	}

	if err := c.scanLimiter.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire scan limiter: %w", err)
	}

	return func() { c.scanLimiter.Release(1) }, nil
}

// track records the outcome of an operation. It is meant to be deferred
// with a pointer to the named error result.
func (c *Client) track(logger *slog.Logger, op logging.OperationType, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}

	c.metrics.Observe(string(op), start, err)

	if err != nil {
		logger.Debug("operation failed",
			slog.String("operation", string(op)),
			slog.Any("error", err),
		)
	}
}

func newOperationID() string {
	return uuid.NewString()
}
