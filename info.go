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
	"math"
	"time"

	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// Info runs an info request. When host is empty the request goes to a
// random node of the cluster, otherwise to host:port.
func (c *Context) Info(ctx context.Context, request, host string, port int) (resp string, err error) {
	defer c.client.track(c.logger, logging.OperationTypeInfo, time.Now(), &err)

	if request == "" {
		return "", fmt.Errorf("%w: info request is empty", models.ErrInvalidArgument)
	}

	if host != "" && (port <= 0 || port > math.MaxUint16) {
		return "", fmt.Errorf("%w: port must be in range 1..%d", models.ErrInvalidArgument, math.MaxUint16)
	}

	if err = c.client.acquire(ctx); err != nil {
		return "", err
	}

	if host == "" {
		resp, err = c.client.cluster.RequestInfo(request)
	} else {
		resp, err = c.client.cluster.RequestHostInfo(host, port, request)
	}

	if err != nil {
		return "", fmt.Errorf("info request %q failed: %w", request, err)
	}

	return resp, nil
}

// InfoEach runs an info request on every node of the cluster. A node that
// fails is reported in its own entry and does not fail the call.
func (c *Context) InfoEach(ctx context.Context, request string) (entries []models.InfoEntry, err error) {
	defer c.client.track(c.logger, logging.OperationTypeInfoEach, time.Now(), &err)

	if request == "" {
		return nil, fmt.Errorf("%w: info request is empty", models.ErrInvalidArgument)
	}

	if err = c.client.acquire(ctx); err != nil {
		return nil, err
	}

	entries, err = c.client.cluster.RequestNodesInfo(request)
	if err != nil {
		return nil, fmt.Errorf("info request %q failed: %w", request, err)
	}

	return entries, nil
}
