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

import (
	"fmt"
	"math"
	"time"
)

// RetryPolicy defines the delays between consecutive polls of a background job.
type RetryPolicy struct {
	// BaseTimeout is the initial delay between polls.
	BaseTimeout time.Duration

	// Multiplier is used to increase the delay between subsequent polls.
	// The actual delay is calculated as: BaseTimeout * (Multiplier ^ attemptNumber)
	Multiplier float64

	// MaxTimeout caps the delay between polls. Zero means no cap.
	MaxTimeout time.Duration
}

// NewRetryPolicy returns new configuration for job polling.
func NewRetryPolicy(baseTimeout time.Duration, multiplier float64, maxTimeout time.Duration) *RetryPolicy {
	return &RetryPolicy{
		BaseTimeout: baseTimeout,
		Multiplier:  multiplier,
		MaxTimeout:  maxTimeout,
	}
}

// NewDefaultRetryPolicy returns a new RetryPolicy with default values.
func NewDefaultRetryPolicy() *RetryPolicy {
	return NewRetryPolicy(100*time.Millisecond, 2, 2*time.Second)
}

// Validate checks retry policy values.
func (p *RetryPolicy) Validate() error {
	if p == nil {
		return nil
	}

	if p.BaseTimeout < 0 {
		return fmt.Errorf("base timeout must be non-negative")
	}

	if p.Multiplier < 1 {
		return fmt.Errorf("multiplier must be greater than or equal to 1")
	}

	if p.MaxTimeout < 0 {
		return fmt.Errorf("max timeout must be non-negative")
	}

	return nil
}

// Delay returns the pause before the given zero based attempt.
func (p *RetryPolicy) Delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseTimeout) * math.Pow(p.Multiplier, float64(attempt)))
	if p.MaxTimeout > 0 && (d > p.MaxTimeout || d < 0) {
		return p.MaxTimeout
	}

	return d
}
