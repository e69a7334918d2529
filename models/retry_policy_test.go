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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testBaseTimeout = 100 * time.Millisecond
	testMultiplier  = 2.0
	testMaxTimeout  = time.Second
)

func TestNewRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := NewRetryPolicy(testBaseTimeout, testMultiplier, testMaxTimeout)

	require.NotNil(t, policy)
	require.Equal(t, testBaseTimeout, policy.BaseTimeout)
	require.Equal(t, testMultiplier, policy.Multiplier)
	require.Equal(t, testMaxTimeout, policy.MaxTimeout)
}

func TestNewDefaultRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := NewDefaultRetryPolicy()

	require.NotNil(t, policy)
	require.NoError(t, policy.Validate())
	require.Equal(t, 100*time.Millisecond, policy.BaseTimeout)
	require.Equal(t, 2.0, policy.Multiplier)
	require.Equal(t, 2*time.Second, policy.MaxTimeout)
}

func TestRetryPolicy_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy  *RetryPolicy
		name    string
		wantErr string
	}{
		{
			name:   "valid",
			policy: NewRetryPolicy(testBaseTimeout, testMultiplier, testMaxTimeout),
		},
		{
			name: "nil",
		},
		{
			name:   "minimum values",
			policy: NewRetryPolicy(0, 1, 0),
		},
		{
			name:    "negative base timeout",
			policy:  NewRetryPolicy(-time.Second, testMultiplier, testMaxTimeout),
			wantErr: "base timeout must be non-negative",
		},
		{
			name:    "multiplier less than 1",
			policy:  NewRetryPolicy(testBaseTimeout, 0.5, testMaxTimeout),
			wantErr: "multiplier must be greater than or equal to 1",
		},
		{
			name:    "negative max timeout",
			policy:  NewRetryPolicy(testBaseTimeout, testMultiplier, -time.Second),
			wantErr: "max timeout must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.policy.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	policy := NewRetryPolicy(testBaseTimeout, testMultiplier, 500*time.Millisecond)

	require.Equal(t, 100*time.Millisecond, policy.Delay(0))
	require.Equal(t, 200*time.Millisecond, policy.Delay(1))
	require.Equal(t, 400*time.Millisecond, policy.Delay(2))
	require.Equal(t, 500*time.Millisecond, policy.Delay(3))
	require.Equal(t, 500*time.Millisecond, policy.Delay(100))

	uncapped := NewRetryPolicy(testBaseTimeout, 1, 0)
	require.Equal(t, testBaseTimeout, uncapped.Delay(10))
}
