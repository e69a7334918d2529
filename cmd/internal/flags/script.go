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
	"github.com/aerospike/aslua/cmd/internal/models"
	ioStorage "github.com/aerospike/aslua/io/storage"
	"github.com/spf13/pflag"
)

type Script struct {
	models.Script
}

func NewScript() *Script {
	return &Script{}
}

func (f *Script) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.IntVarP(&f.Parallel, "parallel", "w",
		1,
		"Maximum number of scripts to run in parallel. Every script runs in its own Lua state.")
	flagSet.Int64Var(&f.ScriptTimeout, "script-timeout",
		0,
		"Timeout (ms) for a single script. The script is aborted when it is exceeded.\n"+
			"0 means no timeout.")
	flagSet.Int64Var(&f.PollBase, "poll-base",
		100,
		"Initial delay (ms) between status polls of a background scan job.")
	flagSet.Int64Var(&f.PollMax, "poll-max",
		2000,
		"Maximum delay (ms) between status polls of a background scan job. 0 means no limit.")
	flagSet.Float64Var(&f.PollMultiplier, "poll-multiplier",
		2,
		"Factor by which the delay between status polls increases.")
	flagSet.StringVar(&f.MetricsAddr, "metrics-addr",
		"",
		"Address to serve Prometheus metrics on, for example :9145.\n"+
			"Metrics are not served when empty.")
	flagSet.IntVar(&f.OpsPerSecond, "ops-per-second",
		0,
		"Limit the number of database operations per second shared by all scripts.\n"+
			"0 means no limit.")
	flagSet.IntVar(&f.MaxParallelScans, "max-parallel-scans",
		0,
		"Maximum number of scans and queries running at the same time. 0 means no limit.")
	flagSet.Int64Var(&f.MaxScriptSize, "max-script-size",
		ioStorage.DefaultMaxSize,
		"Maximum size in bytes of a script after decompression.")

	return flagSet
}

func (f *Script) GetScript() *models.Script {
	return &f.Script
}
