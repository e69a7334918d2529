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

import "time"

// ScriptResult is the outcome of one script.
type ScriptResult struct {
	Location string
	Duration time.Duration
	Err      error
}

// RunStats summarizes a run of several scripts.
type RunStats struct {
	StartTime time.Time
	Duration  time.Duration
	Results   []ScriptResult
}

// Failed returns the number of scripts that returned an error.
func (s *RunStats) Failed() int {
	var n int

	for i := range s.Results {
		if s.Results[i].Err != nil {
			n++
		}
	}

	return n
}
