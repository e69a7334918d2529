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
	"path"
	"time"

	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// UDFPut registers a Lua module under name and waits until every node has it.
func (c *Client) UDFPut(ctx context.Context, name string, source []byte) (err error) {
	defer c.track(c.logger, logging.OperationTypeUDFPut, time.Now(), &err)

	if err = validateUDFName(name); err != nil {
		return err
	}

	if len(source) == 0 {
		return fmt.Errorf("%w: udf %s is empty", models.ErrInvalidArgument, name)
	}

	if err = c.acquire(ctx); err != nil {
		return err
	}

	if err = c.cluster.RegisterUDF(c.policies.Write, source, name); err != nil {
		return err
	}

	c.logger.Info("udf registered", slog.String("name", name), slog.Int("size", len(source)))

	return nil
}

// UDFGet returns the module registered under name including its source.
func (c *Client) UDFGet(ctx context.Context, name string) (udf *models.UDFFile, err error) {
	defer c.track(c.logger, logging.OperationTypeUDFGet, time.Now(), &err)

	if err = validateUDFName(name); err != nil {
		return nil, err
	}

	if err = c.acquire(ctx); err != nil {
		return nil, err
	}

	udf, err = c.cluster.GetUDF(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get udf %s: %w", name, err)
	}

	return udf, nil
}

// UDFList returns the modules registered on the cluster without their source.
func (c *Client) UDFList(ctx context.Context) (udfs []*models.UDFFile, err error) {
	defer c.track(c.logger, logging.OperationTypeUDFList, time.Now(), &err)

	if err = c.acquire(ctx); err != nil {
		return nil, err
	}

	udfs, err = c.cluster.ListUDF()
	if err != nil {
		return nil, fmt.Errorf("failed to list udfs: %w", err)
	}

	return udfs, nil
}

// UDFRemove removes the module registered under name.
func (c *Client) UDFRemove(ctx context.Context, name string) (err error) {
	defer c.track(c.logger, logging.OperationTypeUDFRemove, time.Now(), &err)

	if err = validateUDFName(name); err != nil {
		return err
	}

	if err = c.acquire(ctx); err != nil {
		return err
	}

	if err = c.cluster.RemoveUDF(c.policies.Write, name); err != nil {
		return err
	}

	c.logger.Info("udf removed", slog.String("name", name))

	return nil
}

// validateUDFName accepts plain file names only, the server stores modules flat.
func validateUDFName(name string) error {
	if name == "" || path.Base(name) != name {
		return fmt.Errorf("%w: invalid udf name %q", models.ErrInvalidArgument, name)
	}

	return nil
}
