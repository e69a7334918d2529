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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "aslua"

	StatusOK    = "ok"
	StatusError = "error"
)

// Operations holds the Prometheus metrics of client operations.
// A nil *Operations is valid and records nothing.
type Operations struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	RecordsTotal     *prometheus.CounterVec
	JobPollsTotal    prometheus.Counter

	reg prometheus.Registerer
}

// NewOperations creates the operation metrics and registers them with reg.
func NewOperations(reg prometheus.Registerer) *Operations {
	factory := promauto.With(reg)

	return &Operations{
		reg: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of client operations",
		}, []string{"operation", "status"}),
		RequestsDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Duration of client operations",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"operation"}),
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "records_total",
			Help:      "Total number of records returned by batch, scan and query operations",
		}, []string{"operation"}),
		JobPollsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "job_polls_total",
			Help:      "Total number of background job status polls",
		}),
	}
}

// Unregister removes the metrics from the registerer they were created with,
// so the same labels can be registered again.
func (m *Operations) Unregister() {
	if m == nil || m.reg == nil {
		return
	}

	m.reg.Unregister(m.RequestsTotal)
	m.reg.Unregister(m.RequestsDuration)
	m.reg.Unregister(m.RecordsTotal)
	m.reg.Unregister(m.JobPollsTotal)
}

// Observe records the outcome and duration of an operation.
func (m *Operations) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := StatusOK
	if err != nil {
		status = StatusError
	}

	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestsDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddRecords counts records delivered by an operation.
func (m *Operations) AddRecords(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}

	m.RecordsTotal.WithLabelValues(operation).Add(float64(n))
}

// IncJobPolls counts a background job status poll.
func (m *Operations) IncJobPolls() {
	if m == nil {
		return
	}

	m.JobPollsTotal.Inc()
}
