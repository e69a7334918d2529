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
	"time"

	a "github.com/aerospike/aerospike-client-go/v7"
	atypes "github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// Context runs record operations against a single namespace and set.
// A Context is safe for concurrent use. It stays bound to its [Client]
// and fails with [models.ErrClosed] once the client is closed.
type Context struct {
	client    *Client
	logger    *slog.Logger
	namespace string
	set       string
}

func newContext(c *Client, namespace, set string) *Context {
	return &Context{
		client:    c,
		namespace: namespace,
		set:       set,
		logger:    logging.WithContext(c.logger, newOperationID(), namespace, set),
	}
}

// Namespace returns the namespace the context is bound to.
func (c *Context) Namespace() string {
	return c.namespace
}

// Set returns the set the context is bound to.
func (c *Context) Set() string {
	return c.set
}

func (c *Context) key(pk string) (*a.Key, error) {
	key, aerr := a.NewKey(c.namespace, c.set, pk)
	if aerr != nil {
		return nil, fmt.Errorf("failed to create key %q: %w", pk, aerr)
	}

	return key, nil
}

// Put writes rec under pk. Bins with a nil value are deleted.
func (c *Context) Put(ctx context.Context, pk string, rec *models.Record) (err error) {
	defer c.client.track(c.logger, logging.OperationTypePut, time.Now(), &err)

	if rec == nil || len(rec.Bins) == 0 {
		return models.ErrNotAMapping
	}

	if err = models.ValidateBinCount(len(rec.Bins)); err != nil {
		return err
	}

	if err = c.client.acquire(ctx); err != nil {
		return err
	}

	key, err := c.key(pk)
	if err != nil {
		return err
	}

	if err = c.client.cluster.Put(c.client.policies.writePolicy(rec.Expiration()), key, rec.Bins); err != nil {
		return fmt.Errorf("failed to put record %q: %w", pk, err)
	}

	return nil
}

// Get reads every bin of the record stored under pk.
func (c *Context) Get(ctx context.Context, pk string) (rec *a.Record, err error) {
	defer c.client.track(c.logger, logging.OperationTypeGet, time.Now(), &err)

	return c.get(ctx, pk)
}

// Select reads the named bins of the record stored under pk.
func (c *Context) Select(ctx context.Context, pk string, bins ...string) (rec *a.Record, err error) {
	defer c.client.track(c.logger, logging.OperationTypeSelect, time.Now(), &err)

	if len(bins) == 0 {
		return nil, fmt.Errorf("%w: no bins selected", models.ErrInvalidArgument)
	}

	if err = models.ValidateBinCount(len(bins)); err != nil {
		return nil, err
	}

	for _, bin := range bins {
		if err = models.ValidateBinName(bin); err != nil {
			return nil, err
		}
	}

	return c.get(ctx, pk, bins...)
}

func (c *Context) get(ctx context.Context, pk string, bins ...string) (*a.Record, error) {
	if err := c.client.acquire(ctx); err != nil {
		return nil, err
	}

	key, err := c.key(pk)
	if err != nil {
		return nil, err
	}

	rec, err := c.client.cluster.Get(c.client.policies.Read, key, bins...)
	if err != nil {
		return nil, fmt.Errorf("failed to get record %q: %w", pk, err)
	}

	if rec == nil {
		return nil, fmt.Errorf("failed to get record %q: %w", pk, errRecordNotFound)
	}

	return rec, nil
}

var errRecordNotFound = errors.New("record not found")

// Exists reports whether a record is stored under pk.
func (c *Context) Exists(ctx context.Context, pk string) (found bool, err error) {
	defer c.client.track(c.logger, logging.OperationTypeExists, time.Now(), &err)

	if err = c.client.acquire(ctx); err != nil {
		return false, err
	}

	key, err := c.key(pk)
	if err != nil {
		return false, err
	}

	found, err = c.client.cluster.Exists(c.client.policies.Read, key)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to check record %q: %w", pk, err)
	}

	return found, nil
}

// Remove deletes the record stored under pk.
// It returns false without an error when there was nothing to delete.
func (c *Context) Remove(ctx context.Context, pk string) (existed bool, err error) {
	defer c.client.track(c.logger, logging.OperationTypeRemove, time.Now(), &err)

	if err = c.client.acquire(ctx); err != nil {
		return false, err
	}

	key, err := c.key(pk)
	if err != nil {
		return false, err
	}

	existed, err = c.client.cluster.Delete(c.client.policies.Write, key)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to remove record %q: %w", pk, err)
	}

	return existed, nil
}

// Operate applies ops to the record stored under pk in a single
// command, in the order they were added.
func (c *Context) Operate(ctx context.Context, pk string, ops *models.OperationList) (rec *a.Record, err error) {
	defer c.client.track(c.logger, logging.OperationTypeOperate, time.Now(), &err)

	if ops == nil || ops.Len() == 0 {
		return nil, fmt.Errorf("%w: operation list is empty", models.ErrInvalidArgument)
	}

	compiled, err := ops.Compile()
	if err != nil {
		return nil, err
	}

	if err = c.client.acquire(ctx); err != nil {
		return nil, err
	}

	key, err := c.key(pk)
	if err != nil {
		return nil, err
	}

	rec, err = c.client.cluster.Operate(c.client.policies.Write, key, compiled...)
	if err != nil {
		return nil, fmt.Errorf("failed to operate on record %q: %w", pk, err)
	}

	return rec, nil
}

// Apply runs a record UDF on the record stored under pk and returns its result.
func (c *Context) Apply(ctx context.Context, pk string, call *models.UDFCall) (res any, err error) {
	defer c.client.track(c.logger, logging.OperationTypeApply, time.Now(), &err)

	if call == nil {
		return nil, fmt.Errorf("%w: udf call is required", models.ErrInvalidArgument)
	}

	if err = call.Validate(); err != nil {
		return nil, err
	}

	if err = c.client.acquire(ctx); err != nil {
		return nil, err
	}

	key, err := c.key(pk)
	if err != nil {
		return nil, err
	}

	res, err = c.client.cluster.Execute(c.client.policies.Write, key,
		call.Module, call.Function, toValues(call.Args)...)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s.%s to record %q: %w", call.Module, call.Function, pk, err)
	}

	return res, nil
}

func toValues(args []any) []a.Value {
	if len(args) == 0 {
		return nil
	}

	values := make([]a.Value, len(args))
	for i, arg := range args {
		values[i] = a.NewValue(arg)
	}

	return values
}

func isNotFound(err error) bool {
	var aerr a.Error
	if errors.As(err, &aerr) {
		return aerr.Matches(atypes.KEY_NOT_FOUND_ERROR)
	}

	return false
}
