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

package asinfo

import (
	"testing"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/internal/asinfo/mocks"
	"github.com/stretchr/testify/require"
)

func newMockInfoGetter(t *testing.T, arg string, resp map[string]string, err a.Error) infoGetter {
	t.Helper()
	mockInfoGetter := mocks.NewMockinfoGetter(t)
	mockInfoGetter.On("RequestInfo", (*a.InfoPolicy)(nil), arg).Return(resp, err)

	return mockInfoGetter
}

func Test_parseAerospikeVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		versionStr string
		want       AerospikeVersion
		wantErr    bool
	}{
		{
			name:       "positive simple",
			versionStr: "5.6.0.0",
			want:       AerospikeVersion{Major: 5, Minor: 6},
		},
		{
			name:       "positive with suffix",
			versionStr: "7.6.1.0-rc2-ghasd",
			want:       AerospikeVersion{Major: 7, Minor: 6, Patch: 1},
		},
		{
			name:       "negative missing patch",
			versionStr: "7.6",
			wantErr:    true,
		},
		{
			name:       "negative garbage",
			versionStr: "abc",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAerospikeVersion(tt.versionStr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAerospikeVersion_IsGreaterOrEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		av    AerospikeVersion
		other AerospikeVersion
		want  bool
	}{
		{"equal", AerospikeVersion{6, 0, 0}, AerospikeVersion{6, 0, 0}, true},
		{"major greater", AerospikeVersion{7, 0, 0}, AerospikeVersion{6, 9, 9}, true},
		{"minor greater", AerospikeVersion{6, 1, 0}, AerospikeVersion{6, 0, 9}, true},
		{"patch greater", AerospikeVersion{6, 0, 1}, AerospikeVersion{6, 0, 0}, true},
		{"major less", AerospikeVersion{5, 9, 9}, AerospikeVersion{6, 0, 0}, false},
		{"patch less", AerospikeVersion{6, 0, 0}, AerospikeVersion{6, 0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.av.IsGreaterOrEqual(tt.other))
		})
	}

	require.Equal(t, "6.1.0", AerospikeVersion{6, 1, 0}.String())
}

func Test_getAerospikeVersion(t *testing.T) {
	t.Parallel()

	got, err := getAerospikeVersion(newMockInfoGetter(t, "build", map[string]string{"build": "7.1.0.0"}, nil), nil)
	require.NoError(t, err)
	require.Equal(t, AerospikeVersion{7, 1, 0}, got)

	_, err = getAerospikeVersion(newMockInfoGetter(t, "build", map[string]string{}, nil), nil)
	require.ErrorContains(t, err, "missing 'build' key")

	_, err = getAerospikeVersion(newMockInfoGetter(t, "build", nil, a.ErrNetTimeout), nil)
	require.Error(t, err)
}
