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


package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua"
	"github.com/aerospike/aslua/binding"
	"github.com/aerospike/aslua/cmd/internal/config"
	"github.com/aerospike/aslua/cmd/internal/models"
	"github.com/aerospike/aslua/internal/logging"
	asAerospike "github.com/aerospike/aslua/io/aerospike"
	ioStorage "github.com/aerospike/aslua/io/storage"
	libModels "github.com/aerospike/aslua/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

type scriptReader interface {
	Read(ctx context.Context, raw string) ([]byte, error)
}

type hostDialer func(ctx context.Context, host string, port int) (aslua.Cluster, error)

// sharedCluster is handed to scripts calling aerospike.open() without a
// host. Scripts closing their connection do not close it.
type sharedCluster struct {
	aslua.Cluster
}

func (sharedCluster) Close() {}

// ASLua runs Lua scripts against an Aerospike cluster.
type ASLua struct {
	params *config.Params
	logger *slog.Logger

	cluster  aslua.Cluster
	reader   scriptReader
	dialHost hostDialer

	pollPolicy  *libModels.RetryPolicy
	limiter     *rate.Limiter
	scanLimiter *semaphore.Weighted
	registry    *prometheus.Registry
	metrics     *metricsServer

	connections atomic.Int64
}

// NewService connects to the cluster and prepares the script storages the
// scripts are read from.
func NewService(
	ctx context.Context,
	params *config.Params,
	scripts []string,
	logger *slog.Logger,
) (*ASLua, error) {
	if len(scripts) == 0 {
		return nil, fmt.Errorf("at least one script must be provided")
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	clientPolicy, err := newClientPolicy(params.ClientConfig, params.ClientPolicy)
	if err != nil {
		return nil, err
	}

	router, err := newScriptRouter(ctx, params, scripts, logger)
	if err != nil {
		return nil, err
	}

	asClient, err := newAerospikeClient(params.ClientConfig, clientPolicy, logger)
	if err != nil {
		return nil, err
	}

	infoPolicy := aerospike.NewInfoPolicy()
	cluster := asAerospike.NewClient(asClient, clientPolicy, infoPolicy, logger)

	s := newService(params, cluster, router, logger)
	s.dialHost = func(_ context.Context, host string, port int) (aslua.Cluster, error) {
		c, err := aerospike.NewClientWithPolicyAndHost(clientPolicy, aerospike.NewHost(host, port))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s:%d: %w", host, port, err)
		}

		return asAerospike.NewClient(c, clientPolicy, infoPolicy, logger), nil
	}

	return s, nil
}

func newService(params *config.Params, cluster aslua.Cluster, reader scriptReader, logger *slog.Logger) *ASLua {
	sp := params.Script

	s := &ASLua{
		params:  params,
		logger:  logger,
		cluster: cluster,
		reader:  reader,
		pollPolicy: libModels.NewRetryPolicy(
			time.Duration(sp.PollBase)*time.Millisecond,
			sp.PollMultiplier,
			time.Duration(sp.PollMax)*time.Millisecond,
		),
	}

	if sp.OpsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(sp.OpsPerSecond), sp.OpsPerSecond)
	}

	if sp.MaxParallelScans > 0 {
		s.scanLimiter = semaphore.NewWeighted(int64(sp.MaxParallelScans))
	}

	if sp.MetricsAddr != "" {
		s.registry = newRegistry()
	}

	return s
}

// Run executes the scripts with at most Parallel of them at a time. A failed
// script does not stop the others; all failures are joined into the
// returned error.
func (s *ASLua) Run(ctx context.Context, scripts []string) (*models.RunStats, error) {
	if s.registry != nil && s.metrics == nil {
		s.metrics = startMetricsServer(s.params.Script.MetricsAddr, s.registry, s.logger)
	}

	stats := &models.RunStats{
		StartTime: time.Now(),
		Results:   make([]models.ScriptResult, len(scripts)),
	}

	var g errgroup.Group

	g.SetLimit(s.params.Script.Parallel)

	for i, location := range scripts {
		g.Go(func() error {
			stats.Results[i] = s.runScript(ctx, location)
			return stats.Results[i].Err
		})
	}

	_ = g.Wait()

	stats.Duration = time.Since(stats.StartTime)

	errs := make([]error, 0, len(scripts))
	for i := range stats.Results {
		errs = append(errs, stats.Results[i].Err)
	}

	return stats, errors.Join(errs...)
}

// Close stops the metrics server and disconnects from the cluster.
func (s *ASLua) Close() {
	if s.metrics != nil {
		s.metrics.stop()
	}

	s.cluster.Close()
}

func (s *ASLua) runScript(ctx context.Context, location string) models.ScriptResult {
	start := time.Now()
	logger := logging.WithScript(s.logger, uuid.NewString(), location)

	err := s.execute(ctx, location, logger)
	if err != nil {
		err = fmt.Errorf("script %s: %w", location, err)
		logger.Error("script failed", slog.Any("error", err))
	} else {
		logger.Info("script finished", slog.Duration("duration", time.Since(start)))
	}

	return models.ScriptResult{
		Location: location,
		Duration: time.Since(start),
		Err:      err,
	}
}

func (s *ASLua) execute(ctx context.Context, location string, logger *slog.Logger) error {
	if timeout := s.params.Script.ScriptTimeout; timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
		defer cancel()
	}

	src, err := s.reader.Read(ctx, location)
	if err != nil {
		return err
	}

	loc, err := ioStorage.ParseLocation(location)
	if err != nil {
		return err
	}

	L := lua.NewState()
	defer L.Close()

	L.SetContext(ctx)

	module := binding.NewModule(s.dial, binding.WithLogger(logger))
	defer module.Close()

	module.Preload(L)

	logger.Debug("running script", slog.Int("size", len(src)))

	fn, err := L.Load(bytes.NewReader(src), loc.Name())
	if err != nil {
		return fmt.Errorf("failed to compile: %w", err)
	}

	L.Push(fn)

	return L.PCall(0, lua.MultRet, nil)
}

// dial backs aerospike.open. Without a host scripts share the CLI cluster,
// with a host a new cluster connection is made.
func (s *ASLua) dial(ctx context.Context, host string, port int) (*aslua.Client, error) {
	cluster := aslua.Cluster(sharedCluster{Cluster: s.cluster})

	if host != "" {
		if s.dialHost == nil {
			return nil, fmt.Errorf("connecting to %s:%d is not supported", host, port)
		}

		c, err := s.dialHost(ctx, host, port)
		if err != nil {
			return nil, err
		}

		cluster = c
	}

	id := strconv.FormatInt(s.connections.Add(1), 10)

	opts := []aslua.ClientOpt{
		aslua.WithID(id),
		aslua.WithLogger(s.logger),
		aslua.WithPollPolicy(s.pollPolicy),
	}

	if s.limiter != nil {
		opts = append(opts, aslua.WithRateLimiter(s.limiter))
	}

	if s.scanLimiter != nil {
		opts = append(opts, aslua.WithScanLimiter(s.scanLimiter))
	}

	if s.registry != nil {
		opts = append(opts, aslua.WithMetrics(
			prometheus.WrapRegistererWith(prometheus.Labels{"connection": id}, s.registry)))
	}

	client, err := aslua.NewClient(cluster, opts...)
	if err != nil {
		cluster.Close()
		return nil, err
	}

	return client, nil
}
