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


package models

import "fmt"

// Script contains the parameters of script execution.
type Script struct {
	// Number of scripts executed concurrently.
	Parallel int
	// Timeout of one script in milliseconds. Zero means no timeout.
	ScriptTimeout int64
	// Background job polling, in milliseconds.
	PollBase       int64
	PollMax        int64
	PollMultiplier float64
	// Address of the Prometheus metrics endpoint. Empty disables it.
	MetricsAddr string
	// Limit of database operations per second for all scripts. Zero means no limit.
	OpsPerSecond int
	// Limit of concurrently running scans and queries. Zero means no limit.
	MaxParallelScans int
	// Maximum size in bytes of a decoded script.
	MaxScriptSize int64
}

func (s *Script) Validate() error {
	if s == nil {
		return nil
	}

	if s.Parallel < 1 {
		return fmt.Errorf("parallel must be greater than 0, got %d", s.Parallel)
	}

	if s.ScriptTimeout < 0 {
		return fmt.Errorf("script-timeout must be non-negative")
	}

	if s.PollBase < 0 || s.PollMax < 0 {
		return fmt.Errorf("poll-base and poll-max must be non-negative")
	}

	if s.PollMax > 0 && s.PollMax < s.PollBase {
		return fmt.Errorf("poll-max %d must not be less than poll-base %d", s.PollMax, s.PollBase)
	}

	if s.PollMultiplier < 1 {
		return fmt.Errorf("poll-multiplier must be greater than or equal to 1")
	}

	if s.OpsPerSecond < 0 {
		return fmt.Errorf("ops-per-second must be non-negative")
	}

	if s.MaxParallelScans < 0 {
		return fmt.Errorf("max-parallel-scans must be non-negative")
	}

	if s.MaxScriptSize < 1 {
		return fmt.Errorf("max-script-size must be positive")
	}

	return nil
}
