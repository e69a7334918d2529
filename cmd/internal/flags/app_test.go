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


package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_NewFlagSet(t *testing.T) {
	t.Parallel()
	app := NewApp()

	flagSet := app.NewFlagSet()

	args := []string{
		"--verbose",
		"--log-level", "warn",
		"--log-json",
		"--config", "config.yaml",
	}

	require.NoError(t, flagSet.Parse(args))

	result := app.GetApp()
	assert.True(t, result.Verbose)
	assert.Equal(t, "warn", result.LogLevel)
	assert.True(t, result.LogJSON)
	assert.Equal(t, "config.yaml", result.Config)
	assert.False(t, result.Version)
}

func TestApp_NewFlagSet_DefaultValues(t *testing.T) {
	t.Parallel()
	app := NewApp()

	require.NoError(t, app.NewFlagSet().Parse([]string{}))

	result := app.GetApp()
	assert.False(t, result.Verbose)
	assert.Equal(t, "debug", result.LogLevel)
	assert.False(t, result.LogJSON)
	assert.Empty(t, result.Config)
}

func TestClientPolicy_NewFlagSet(t *testing.T) {
	t.Parallel()
	cp := NewClientPolicy()

	flagSet := cp.NewFlagSet()
	require.NoError(t, flagSet.Parse([]string{"--client-timeout", "5000", "--client-idle-timeout", "1000"}))

	result := cp.GetClientPolicy()
	assert.Equal(t, int64(5000), result.Timeout)
	assert.Equal(t, int64(1000), result.IdleTimeout)
	assert.Equal(t, int64(10000), result.LoginTimeout)
}

func TestScript_NewFlagSet(t *testing.T) {
	t.Parallel()
	script := NewScript()

	flagSet := script.NewFlagSet()

	args := []string{
		"--parallel", "4",
		"--script-timeout", "60000",
		"--poll-base", "50",
		"--poll-max", "500",
		"--poll-multiplier", "1.5",
		"--metrics-addr", ":9145",
		"--ops-per-second", "1000",
		"--max-parallel-scans", "2",
		"--max-script-size", "2048",
	}

	require.NoError(t, flagSet.Parse(args))

	result := script.GetScript()
	assert.Equal(t, 4, result.Parallel)
	assert.Equal(t, int64(60000), result.ScriptTimeout)
	assert.Equal(t, int64(50), result.PollBase)
	assert.Equal(t, int64(500), result.PollMax)
	assert.InDelta(t, 1.5, result.PollMultiplier, 0.0001)
	assert.Equal(t, ":9145", result.MetricsAddr)
	assert.Equal(t, 1000, result.OpsPerSecond)
	assert.Equal(t, 2, result.MaxParallelScans)
	assert.Equal(t, int64(2048), result.MaxScriptSize)
	require.NoError(t, result.Validate())
}

func TestScript_NewFlagSet_DefaultValues(t *testing.T) {
	t.Parallel()
	script := NewScript()

	require.NoError(t, script.NewFlagSet().Parse([]string{}))

	result := script.GetScript()
	assert.Equal(t, 1, result.Parallel)
	assert.Equal(t, int64(0), result.ScriptTimeout)
	assert.Equal(t, int64(100), result.PollBase)
	assert.Equal(t, int64(2000), result.PollMax)
	assert.InDelta(t, 2.0, result.PollMultiplier, 0.0001)
	assert.Empty(t, result.MetricsAddr)
	assert.Equal(t, int64(16<<20), result.MaxScriptSize)
	require.NoError(t, result.Validate())
}
