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

package luaval

import (
	"testing"

	"github.com/aerospike/aslua/models"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tests := []struct {
		want *models.QuerySpec
		name string
		expr string
	}{
		{
			name: "no clauses",
			expr: "{}",
			want: &models.QuerySpec{Namespace: "test", Set: "demo"},
		},
		{
			name: "nil",
			expr: "nil",
			want: &models.QuerySpec{Namespace: "test", Set: "demo"},
		},
		{
			name: "select",
			expr: "{select = {'a', 'b'}}",
			want: &models.QuerySpec{Namespace: "test", Set: "demo", Select: []string{"a", "b"}},
		},
		{
			name: "where equality and range",
			expr: "{where = {name = 'bob', age = {18, 30}, id = 7}}",
			want: &models.QuerySpec{
				Namespace: "test",
				Set:       "demo",
				Where: []models.Predicate{
					{Bin: "age", Kind: models.PredicateRange, Min: 18, Max: 30},
					{Bin: "id", Kind: models.PredicateEqual, Value: int64(7)},
					{Bin: "name", Kind: models.PredicateEqual, Value: "bob"},
				},
			},
		},
		{
			name: "index",
			expr: "{where = {age = {18, 30}, name = 'bob'}, index = 'name'}",
			want: &models.QuerySpec{
				Namespace: "test",
				Set:       "demo",
				Where: []models.Predicate{
					{Bin: "age", Kind: models.PredicateRange, Min: 18, Max: 30},
					{Bin: "name", Kind: models.PredicateEqual, Value: "bob"},
				},
				Index: "name",
			},
		},
		{
			name: "degenerate range",
			expr: "{where = {age = {5, 5}}}",
			want: &models.QuerySpec{
				Namespace: "test",
				Set:       "demo",
				Where:     []models.Predicate{{Bin: "age", Kind: models.PredicateRange, Min: 5, Max: 5}},
			},
		},
		{
			name: "orderby",
			expr: "{orderby = {b = 2, a = 1}}",
			want: &models.QuerySpec{
				Namespace: "test",
				Set:       "demo",
				OrderBy: []models.Order{
					{Bin: "a", Direction: models.OrderAsc},
					{Bin: "b", Direction: models.OrderDesc},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuery("test", "demo", eval(t, L, tt.expr))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuildQuery_Errors(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tests := []struct {
		name    string
		expr    string
		message string
	}{
		{name: "not a table", expr: "'q'", message: "query must be a table"},
		{name: "empty select", expr: "{select = {}}", message: "select field"},
		{name: "select hash", expr: "{select = {a = 1}}", message: "select field"},
		{name: "select number", expr: "{select = {1}}", message: "select field"},
		{name: "select long bin", expr: "{select = {'a_very_long_bin_name'}}", message: "invalid bin name"},
		{name: "empty where", expr: "{where = {}}", message: "where field must be hash table"},
		{name: "where array", expr: "{where = {1, 2}}", message: "where field must be hash table"},
		{name: "range of three", expr: "{where = {age = {1, 2, 3}}}", message: "range must be {min, max}"},
		{name: "range of one", expr: "{where = {age = {1}}}", message: "range must be {min, max}"},
		{name: "range of strings", expr: "{where = {age = {'a', 'b'}}}", message: "range bounds must be integers"},
		{name: "range of floats", expr: "{where = {age = {1.5, 2}}}", message: "range bounds must be integers"},
		{name: "inverted range", expr: "{where = {age = {10, 1}}}", message: "greater than max"},
		{name: "float equality", expr: "{where = {age = 1.5}}", message: "must be an integer"},
		{name: "boolean equality", expr: "{where = {age = true}}", message: "unsupported value type"},
		{name: "index number", expr: "{where = {age = 1}, index = 1}", message: "index field must be a bin name"},
		{name: "index empty", expr: "{where = {age = 1}, index = ''}", message: "index field must be a bin name"},
		{name: "index without where", expr: "{where = {age = 1}, index = 'name'}", message: "has no where predicate"},
		{name: "empty orderby", expr: "{orderby = {}}", message: "orderby field must be hash table"},
		{name: "bad direction", expr: "{orderby = {a = 3}}", message: "ORDER_ASC or ORDER_DESC"},
		{name: "string direction", expr: "{orderby = {a = 'asc'}}", message: "ORDER_ASC or ORDER_DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuery("test", "demo", eval(t, L, tt.expr))
			require.ErrorIs(t, err, models.ErrInvalidQuery)
			require.ErrorContains(t, err, tt.message)
			require.Nil(t, got)
		})
	}
}

func TestBuildQuery_InvalidNamespace(t *testing.T) {
	t.Parallel()

	_, err := BuildQuery("", "demo", lua.LNil)
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}
