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
	"fmt"
	"sort"

	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

// MaxDepth limits table nesting during conversion.
const MaxDepth = 64

// ToTyped converts a Lua value to a value the Aerospike client can pack.
// Integral numbers become int64, other numbers float64, booleans 0 or 1.
// Tables become []any or map[any]any depending on their shape, and an
// empty nested table becomes an empty list.
// A top level nil converts to nil, a nil inside a container is an error.
func ToTyped(lv lua.LValue) (any, error) {
	return toTyped(lv, 0)
}

// ToTypedConverter adapts ToTyped to models.Converter for deferred
// operation operands.
func ToTypedConverter(v any) (any, error) {
	lv, ok := v.(lua.LValue)
	if !ok {
		return nil, fmt.Errorf("%w: %T", models.ErrUnsupportedType, v)
	}

	return ToTyped(lv)
}

func toTyped(lv lua.LValue, depth int) (any, error) {
	switch v := lv.(type) {
	case nil, *lua.LNilType:
		return nil, nil
	case lua.LBool:
		if v {
			return int64(1), nil
		}

		return int64(0), nil
	case lua.LNumber:
		return numberToTyped(v), nil
	case lua.LString:
		return string(v), nil
	case *lua.LTable:
		return tableToTyped(v, depth+1)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedType, lv.Type())
	}
}

func numberToTyped(n lua.LNumber) any {
	if i, ok := toInteger(n); ok {
		return i
	}

	return float64(n)
}

func tableToTyped(tb *lua.LTable, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", models.ErrInvalidShape, MaxDepth)
	}

	switch shape := Classify(tb); shape {
	case ShapeEmpty:
		return []any{}, nil
	case ShapeSequence:
		return sequenceToTyped(tb, depth)
	case ShapeMapping:
		return mappingToTyped(tb, depth)
	case ShapeMixed:
		return nil, fmt.Errorf("%w: should not be included both of array and hash", models.ErrInvalidShape)
	default:
		return nil, fmt.Errorf("%w: table keys must be 1..n or strings", models.ErrInvalidShape)
	}
}

func sequenceToTyped(tb *lua.LTable, depth int) ([]any, error) {
	n := tb.MaxN()
	list := make([]any, 0, n)

	for i := 1; i <= n; i++ {
		item := tb.RawGetInt(i)
		if item == lua.LNil {
			return nil, fmt.Errorf("%w: nil at index %d", models.ErrInvalidShape, i)
		}

		v, err := toTyped(item, depth)
		if err != nil {
			return nil, fmt.Errorf("at index %d: %w", i, err)
		}

		list = append(list, v)
	}

	return list, nil
}

func mappingToTyped(tb *lua.LTable, depth int) (map[any]any, error) {
	keys := SortedKeys(tb)
	m := make(map[any]any, len(keys))

	for _, k := range keys {
		v, err := toTyped(tb.RawGetString(k), depth)
		if err != nil {
			return nil, fmt.Errorf("at field %s: %w", k, err)
		}

		m[k] = v
	}

	return m, nil
}

// SortedKeys returns the string keys of tb in lexical order.
func SortedKeys(tb *lua.LTable) []string {
	keys := make([]string, 0)

	tb.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})

	sort.Strings(keys)

	return keys
}

// ToArgs converts the stack values from index start to the top into UDF arguments.
func ToArgs(L *lua.LState, start int) ([]any, error) {
	top := L.GetTop()
	if start > top {
		return nil, nil
	}

	args := make([]any, 0, top-start+1)

	for i := start; i <= top; i++ {
		v, err := ToTyped(L.Get(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i-start+1, err)
		}

		args = append(args, v)
	}

	return args, nil
}

// ToArgsTable converts a sequence of UDF arguments. An empty or nil table yields no arguments.
func ToArgsTable(lv lua.LValue) ([]any, error) {
	if lv == lua.LNil {
		return nil, nil
	}

	tb, ok := lv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: udf arguments must be an array, got %s", models.ErrInvalidArgument, lv.Type())
	}

	switch Classify(tb) {
	case ShapeEmpty:
		return nil, nil
	case ShapeSequence:
		return sequenceToTyped(tb, 1)
	default:
		return nil, fmt.Errorf("%w: udf arguments must be an array", models.ErrInvalidShape)
	}
}
