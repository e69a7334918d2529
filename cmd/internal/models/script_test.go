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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScript() *Script {
	return &Script{
		Parallel:       1,
		PollBase:       100,
		PollMax:        2000,
		PollMultiplier: 2,
		MaxScriptSize:  1024,
	}
}

func TestScript_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(s *Script)
		wantErr string
	}{
		{name: "valid", modify: func(*Script) {}},
		{name: "zero parallel", modify: func(s *Script) { s.Parallel = 0 }, wantErr: "parallel must be greater than 0"},
		{name: "negative timeout", modify: func(s *Script) { s.ScriptTimeout = -1 }, wantErr: "script-timeout"},
		{name: "negative poll", modify: func(s *Script) { s.PollBase = -1 }, wantErr: "poll-base"},
		{name: "max below base", modify: func(s *Script) { s.PollMax = 50 }, wantErr: "poll-max 50"},
		{name: "no max", modify: func(s *Script) { s.PollMax = 0 }},
		{name: "multiplier", modify: func(s *Script) { s.PollMultiplier = 0.5 }, wantErr: "poll-multiplier"},
		{name: "ops", modify: func(s *Script) { s.OpsPerSecond = -5 }, wantErr: "ops-per-second"},
		{name: "scans", modify: func(s *Script) { s.MaxParallelScans = -1 }, wantErr: "max-parallel-scans"},
		{name: "size", modify: func(s *Script) { s.MaxScriptSize = 0 }, wantErr: "max-script-size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validScript()
			tt.modify(s)

			err := s.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	var nilScript *Script
	assert.NoError(t, nilScript.Validate())
}

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&App{LogLevel: "bogus"}).Validate())
	assert.NoError(t, (&App{Verbose: true, LogLevel: "warn"}).Validate())
	assert.Error(t, (&App{Verbose: true, LogLevel: "bogus"}).Validate())
}

func TestClientPolicy_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&ClientPolicy{Timeout: 1000}).Validate())
	assert.ErrorContains(t, (&ClientPolicy{Timeout: -1}).Validate(), "client-timeout")
	assert.ErrorContains(t, (&ClientPolicy{IdleTimeout: -1}).Validate(), "client-idle-timeout")
	assert.ErrorContains(t, (&ClientPolicy{LoginTimeout: -1}).Validate(), "client-login-timeout")
}
