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

package metrics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// MetricRecordsPerSecond is the name under which streamed record rates are logged.
const MetricRecordsPerSecond = "rps"

// Collector counts streamed records and reports the rate once per second
// until its context is done.
type Collector struct {
	ctx context.Context

	// enabled indicates whether the Collector is active and metrics will be tracked and reported.
	enabled bool
	name    string
	message string

	Increment func()
	Add       func(n uint64)

	processed atomic.Uint64
	lastTime  time.Time
	// lastResult is the last calculated rate.
	lastResult atomic.Uint64
	logger     *slog.Logger
}

// NewCollector initializes a new Collector. Enabled metrics are reported
// to the logger at debug level.
func NewCollector(ctx context.Context, logger *slog.Logger, name, message string, enabled bool) *Collector {
	mc := &Collector{
		ctx:       ctx,
		enabled:   enabled,
		name:      name,
		message:   message,
		Increment: func() {},
		Add:       func(uint64) {},
		lastTime:  time.Now(),
		logger:    logger,
	}

	if enabled {
		mc.Increment = func() { mc.processed.Add(1) }
		mc.Add = func(n uint64) { mc.processed.Add(n) }

		go mc.report()
	}

	return mc
}

// NewRecordsCollector returns a records per second collector that is
// enabled only when the logger reports debug messages.
func NewRecordsCollector(ctx context.Context, logger *slog.Logger) *Collector {
	return NewCollector(ctx, logger, MetricRecordsPerSecond, "records streamed",
		logger.Enabled(ctx, slog.LevelDebug))
}

func (mc *Collector) report() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			mc.tick(t)
		case <-mc.ctx.Done():
			return
		}
	}
}

func (mc *Collector) tick(t time.Time) {
	count := mc.processed.Swap(0)
	elapsed := t.Sub(mc.lastTime).Seconds()

	var result float64
	if elapsed > 0 {
		result = float64(count) / elapsed
	}

	mc.lastResult.Store(uint64(result))
	mc.logger.Debug(mc.message, slog.Float64(mc.name, result))
	mc.lastTime = t
}

// GetLastResult returns the last calculated rate.
func (mc *Collector) GetLastResult() uint64 {
	if mc == nil {
		return 0
	}

	return mc.lastResult.Load()
}
