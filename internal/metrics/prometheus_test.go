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
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOperations(t *testing.T) {
	t.Parallel()

	m := NewOperations(prometheus.NewRegistry())

	m.Observe("get", time.Now(), nil)
	m.Observe("get", time.Now(), nil)
	m.Observe("get", time.Now(), errors.New("timeout"))
	m.AddRecords("scan", 10)
	m.AddRecords("scan", 0)
	m.IncJobPolls()

	require.Equal(t, float64(2), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("get", StatusOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("get", StatusError)))
	require.Equal(t, float64(10), testutil.ToFloat64(m.RecordsTotal.WithLabelValues("scan")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.JobPollsTotal))
	require.Equal(t, 1, testutil.CollectAndCount(m.RequestsDuration))
}

func TestOperations_Nil(t *testing.T) {
	t.Parallel()

	var m *Operations

	require.NotPanics(t, func() {
		m.Observe("get", time.Now(), nil)
		m.AddRecords("scan", 1)
		m.IncJobPolls()
	})
}

func TestOperations_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewOperations(reg)

	require.Panics(t, func() { NewOperations(reg) })
}

func TestOperations_Unregister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"connection": "1"}, reg)

	m := NewOperations(wrapped)
	m.Observe("get", time.Now(), nil)
	m.IncJobPolls()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	m.Unregister()

	families, err = reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)

	require.NotPanics(t, func() { NewOperations(wrapped) })

	var nilOps *Operations
	require.NotPanics(t, nilOps.Unregister)
}
