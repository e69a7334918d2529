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

	"github.com/stretchr/testify/require"
)

func TestQuerySpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec    QuerySpec
		name    string
		wantErr error
	}{
		{
			name: "no clauses",
			spec: QuerySpec{Namespace: "test", Set: "demo"},
		},
		{
			name: "all clauses",
			spec: QuerySpec{
				Namespace: "test",
				Set:       "demo",
				Select:    []string{"a", "b"},
				Where: []Predicate{
					{Bin: "age", Kind: PredicateRange, Min: 1, Max: 10},
					{Bin: "name", Kind: PredicateEqual, Value: "bob"},
				},
				OrderBy:   []Order{{Bin: "age", Direction: OrderDesc}},
				Aggregate: &UDFCall{Module: "m", Function: "f"},
			},
		},
		{
			name: "index on second predicate",
			spec: QuerySpec{
				Namespace: "test",
				Where: []Predicate{
					{Bin: "age", Kind: PredicateRange, Min: 1, Max: 10},
					{Bin: "name", Kind: PredicateEqual, Value: "bob"},
				},
				Index: "name",
			},
		},
		{
			name: "index without predicate",
			spec: QuerySpec{
				Namespace: "test",
				Where:     []Predicate{{Bin: "age", Kind: PredicateEqual, Value: int64(1)}},
				Index:     "name",
			},
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "bad namespace",
			spec:    QuerySpec{Namespace: ""},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "bad select bin",
			spec:    QuerySpec{Namespace: "test", Select: []string{""}},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "inverted range",
			spec: QuerySpec{
				Namespace: "test",
				Where:     []Predicate{{Bin: "age", Kind: PredicateRange, Min: 10, Max: 1}},
			},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "float equality",
			spec: QuerySpec{
				Namespace: "test",
				Where:     []Predicate{{Bin: "age", Kind: PredicateEqual, Value: 1.5}},
			},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "unknown direction",
			spec: QuerySpec{
				Namespace: "test",
				OrderBy:   []Order{{Bin: "age", Direction: 3}},
			},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "aggregate without function",
			spec: QuerySpec{
				Namespace: "test",
				Aggregate: &UDFCall{Module: "m"},
			},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.spec.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuerySpec_IndexPredicate(t *testing.T) {
	t.Parallel()

	where := []Predicate{
		{Bin: "age", Kind: PredicateRange, Min: 1, Max: 10},
		{Bin: "name", Kind: PredicateEqual, Value: "bob"},
	}

	require.Equal(t, -1, (&QuerySpec{}).IndexPredicate())
	require.Equal(t, 0, (&QuerySpec{Where: where}).IndexPredicate())
	require.Equal(t, 1, (&QuerySpec{Where: where, Index: "name"}).IndexPredicate())
	require.Equal(t, -1, (&QuerySpec{Where: where, Index: "other"}).IndexPredicate())
}

func TestJobStatus_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "in-progress", JobInProgress.String())
	require.Equal(t, "completed", JobCompleted.String())
	require.Equal(t, "aborted", JobAborted.String())
	require.Equal(t, "undefined", JobUndefined.String())
}
