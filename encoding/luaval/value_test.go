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
	"strings"
	"testing"

	"github.com/aerospike/aslua/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func newState(t *testing.T) *lua.LState {
	t.Helper()

	L := lua.NewState()
	t.Cleanup(L.Close)

	return L
}

// eval returns the value of a Lua expression.
func eval(t *testing.T, L *lua.LState, expr string) lua.LValue {
	t.Helper()

	require.NoError(t, L.DoString("return "+expr))

	lv := L.Get(-1)
	L.Pop(1)

	return lv
}

func TestClassify(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tests := []struct {
		expr string
		want Shape
	}{
		{"{}", ShapeEmpty},
		{"{1, 2, 3}", ShapeSequence},
		{"{[1] = 'a', [2] = 'b'}", ShapeSequence},
		{"{a = 1, b = 2}", ShapeMapping},
		{"{1, a = 1}", ShapeMixed},
		{"{[1] = 1, [3] = 3}", ShapeInvalid},
		{"{[0] = 1}", ShapeInvalid},
		{"{[1.5] = 1}", ShapeInvalid},
		{"{[-1] = 1}", ShapeInvalid},
		{"{[true] = 1}", ShapeInvalid},
		{"{[{}] = 1}", ShapeInvalid},
	}

	for _, tt := range tests {
		tb, ok := eval(t, L, tt.expr).(*lua.LTable)
		require.True(t, ok, tt.expr)
		assert.Equal(t, tt.want, Classify(tb), tt.expr)
	}
}

func TestToTyped(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tests := []struct {
		want any
		expr string
	}{
		{int64(42), "42"},
		{int64(-7), "-7"},
		{1.5, "1.5"},
		{"str", "'str'"},
		{"with\x00zero", "'with\\0zero'"},
		{int64(1), "true"},
		{int64(0), "false"},
		{nil, "nil"},
		{[]any{}, "{}"},
		{[]any{int64(1), "two", 3.5}, "{1, 'two', 3.5}"},
		{map[any]any{"a": int64(1), "b": "x"}, "{a = 1, b = 'x'}"},
		{
			[]any{int64(1), map[any]any{"k": []any{int64(1), int64(0)}}, []any{}},
			"{1, {k = {true, false}}, {}}",
		},
	}

	for _, tt := range tests {
		got, err := ToTyped(eval(t, L, tt.expr))
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestToTyped_Errors(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tests := []struct {
		want    error
		expr    string
		message string
	}{
		{models.ErrInvalidShape, "{1, a = 2}", "both of array and hash"},
		{models.ErrInvalidShape, "{[1] = 1, [3] = 3}", ""},
		{models.ErrUnsupportedType, "{1, print}", "at index 2"},
		{models.ErrUnsupportedType, "{a = {b = print}}", "at field a: at field b"},
		{models.ErrUnsupportedType, "print", ""},
		{models.ErrUnsupportedType, "coroutine.create(function() end)", ""},
		{models.ErrInvalidShape, "{a = {1, x = 1}}", "at field a"},
	}

	for _, tt := range tests {
		_, err := ToTyped(eval(t, L, tt.expr))
		require.ErrorIs(t, err, tt.want, tt.expr)

		if tt.message != "" {
			require.ErrorContains(t, err, tt.message, tt.expr)
		}
	}
}

func TestToTyped_Depth(t *testing.T) {
	t.Parallel()

	L := newState(t)

	nested := func(n int) string {
		return strings.Repeat("{", n) + strings.Repeat("}", n)
	}

	_, err := ToTyped(eval(t, L, nested(MaxDepth)))
	require.NoError(t, err)

	_, err = ToTyped(eval(t, L, nested(MaxDepth+1)))
	require.ErrorIs(t, err, models.ErrInvalidShape)
}

func TestToTyped_RoundTrip(t *testing.T) {
	t.Parallel()

	L := newState(t)

	values := []any{
		int64(0),
		int64(-9007199254740991),
		0.25,
		"",
		"text",
		[]any{int64(1), "a", []any{int64(2), int64(3)}},
		map[any]any{"x": int64(1), "y": map[any]any{"z": "deep"}, "l": []any{"v"}},
	}

	for _, v := range values {
		back, err := ToTyped(ToLua(L, v))
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestToTypedConverter(t *testing.T) {
	t.Parallel()

	L := newState(t)

	v, err := ToTypedConverter(eval(t, L, "{1, 2}"))
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2)}, v)

	_, err = ToTypedConverter(struct{}{})
	require.ErrorIs(t, err, models.ErrUnsupportedType)
}

func TestToArgs(t *testing.T) {
	t.Parallel()

	L := newState(t)

	L.Push(lua.LString("skipped"))
	L.Push(lua.LNumber(1))
	L.Push(lua.LString("two"))
	L.Push(eval(t, L, "{a = 1}"))

	args, err := ToArgs(L, 2)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), "two", map[any]any{"a": int64(1)}}, args)

	args, err = ToArgs(L, 5)
	require.NoError(t, err)
	require.Empty(t, args)

	L.Push(L.NewFunction(func(*lua.LState) int { return 0 }))

	_, err = ToArgs(L, 2)
	require.ErrorIs(t, err, models.ErrUnsupportedType)
	require.ErrorContains(t, err, "argument 4")
}

func TestToArgsTable(t *testing.T) {
	t.Parallel()

	L := newState(t)

	args, err := ToArgsTable(eval(t, L, "{1, 'x'}"))
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), "x"}, args)

	args, err = ToArgsTable(eval(t, L, "{}"))
	require.NoError(t, err)
	require.Nil(t, args)

	args, err = ToArgsTable(lua.LNil)
	require.NoError(t, err)
	require.Nil(t, args)

	_, err = ToArgsTable(eval(t, L, "{a = 1}"))
	require.ErrorIs(t, err, models.ErrInvalidShape)

	_, err = ToArgsTable(lua.LNumber(1))
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}
