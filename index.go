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

	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// IndexCreate creates a secondary index on bin and waits until it is built.
func (c *Context) IndexCreate(ctx context.Context, indexType models.IndexType, name, bin string) (err error) {
	defer c.client.track(c.logger, logging.OperationTypeIndexCreate, time.Now(), &err)

	if err = indexType.Validate(); err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("%w: index name is empty", models.ErrInvalidArgument)
	}

	if err = models.ValidateBinName(bin); err != nil {
		return err
	}

	if err = c.client.acquire(ctx); err != nil {
		return err
	}

	if err = c.client.cluster.CreateIndex(c.client.policies.Write, c.namespace, c.set, name, bin,
		indexType); err != nil {
		return err
	}

	c.logger.Info("sindex created", slog.String("name", name), slog.String("bin", bin))

	return nil
}

// IndexRemove drops the secondary index called name.
func (c *Context) IndexRemove(ctx context.Context, name string) (err error) {
	defer c.client.track(c.logger, logging.OperationTypeIndexRemove, time.Now(), &err)

	if name == "" {
		return fmt.Errorf("%w: index name is empty", models.ErrInvalidArgument)
	}

	if err = c.client.acquire(ctx); err != nil {
		return err
	}

	if err = c.client.cluster.DropIndex(c.client.policies.Write, c.namespace, c.set, name); err != nil {
		return err
	}

	c.logger.Info("sindex removed", slog.String("name", name))

	return nil
}
