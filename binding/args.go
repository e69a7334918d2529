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


package binding

import (
	"context"
	"fmt"
	"math"

	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func newUserData(L *lua.LState, v any, typeName string) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))

	return ud
}

func registerType(L *lua.LState, typeName string, methods map[string]lua.LGFunction) {
	mt := L.NewTypeMetatable(typeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), methods))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(typeName))
		return 1
	}))
}

// failNil pushes nil and the error message.
func failNil(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))

	return 2
}

// failFalse pushes false and the error message.
func failFalse(L *lua.LState, err error) int {
	L.Push(lua.LFalse)
	L.Push(lua.LString(err.Error()))

	return 2
}

func pushTrue(L *lua.LState) int {
	L.Push(lua.LTrue)
	return 1
}

// checkKey reads a primary key. Numbers are accepted in their string form.
func checkKey(L *lua.LState, n int) (string, error) {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: primary key must be a string, got %s", models.ErrInvalidArgument, v.Type())
	}
}

func checkString(L *lua.LState, n int, name string) (string, error) {
	s, ok := L.Get(n).(lua.LString)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s must be a non empty string", models.ErrInvalidArgument, name)
	}

	return string(s), nil
}

func optString(L *lua.LState, n int, name string) (string, error) {
	switch v := L.Get(n).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %s", models.ErrInvalidArgument, name, v.Type())
	}
}

func optInt(L *lua.LState, n int, name string, def int64) (int64, error) {
	switch v := L.Get(n).(type) {
	case *lua.LNilType:
		return def, nil
	case lua.LNumber:
		return toInt(v, name)
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %s", models.ErrInvalidArgument, name, v.Type())
	}
}

func toInt(v lua.LNumber, name string) (int64, error) {
	f := float64(v)
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", models.ErrInvalidArgument, name, f)
	}

	return int64(f), nil
}

// optTable returns the table at n or nil when the argument is absent.
func optTable(L *lua.LState, n int, name string) (*lua.LTable, error) {
	switch v := L.Get(n).(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a table, got %s", models.ErrInvalidArgument, name, v.Type())
	}
}

// fieldInt reads an optional non negative integer field of tb.
func fieldInt(tb *lua.LTable, name string) (int64, error) {
	switch v := tb.RawGetString(name).(type) {
	case *lua.LNilType:
		return 0, nil
	case lua.LNumber:
		n, err := toInt(v, name)
		if err != nil {
			return 0, err
		}

		if n < 0 {
			return 0, fmt.Errorf("%w: %s must be non-negative", models.ErrInvalidArgument, name)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %s", models.ErrInvalidArgument, name, v.Type())
	}
}

func fieldString(tb *lua.LTable, name string) (string, error) {
	switch v := tb.RawGetString(name).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %s", models.ErrInvalidArgument, name, v.Type())
	}
}
