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
	"fmt"

	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

func registerOperation(L *lua.LState) {
	registerType(L, operationTypeName, map[string]lua.LGFunction{
		"read":    opRead,
		"write":   opWrite,
		"append":  opAppend,
		"prepend": opPrepend,
		"incr":    opIncr,
		"touch":   opTouch,
		"len":     opLen,
	})
}

func toOperationList(lv lua.LValue) (*models.OperationList, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, false
	}

	ops, ok := ud.Value.(*models.OperationList)

	return ops, ok
}

func checkOperation(L *lua.LState) *models.OperationList {
	if ops, ok := toOperationList(L.Get(1)); ok {
		return ops
	}

	L.ArgError(1, operationTypeName+" expected")

	return nil
}

// chain pushes the receiver so calls can be chained, or nil and the error.
func chain(L *lua.LState, err error) int {
	if err != nil {
		return failNil(L, err)
	}

	L.Push(L.Get(1))

	return 1
}

// ops:read(bin) → ops | nil, msg
func opRead(L *lua.LState) int {
	ops := checkOperation(L)
	return chain(L, ops.AddRead(binArg(L, 2)))
}

// ops:write(bin, value) → ops | nil, msg
// The value is converted when the list is compiled.
func opWrite(L *lua.LState) int {
	ops := checkOperation(L)

	v := L.Get(3)
	if v == lua.LNil {
		return chain(L, fmt.Errorf("%w: write requires a value", models.ErrInvalidOperand))
	}

	return chain(L, ops.AddWrite(binArg(L, 2), v))
}

// ops:append(bin, str) → ops | nil, msg
func opAppend(L *lua.LState) int {
	ops := checkOperation(L)
	return chain(L, ops.AddAppend(binArg(L, 2), stringOperand(L.Get(3))))
}

// ops:prepend(bin, str) → ops | nil, msg
func opPrepend(L *lua.LState) int {
	ops := checkOperation(L)
	return chain(L, ops.AddPrepend(binArg(L, 2), stringOperand(L.Get(3))))
}

// ops:incr(bin, n) → ops | nil, msg
func opIncr(L *lua.LState) int {
	ops := checkOperation(L)

	n, ok := L.Get(3).(lua.LNumber)
	if !ok {
		return chain(L, fmt.Errorf("%w: incr requires an integer, got %s", models.ErrInvalidOperand, L.Get(3).Type()))
	}

	v, err := toInt(n, "increment")
	if err != nil {
		return chain(L, fmt.Errorf("%w: %w", models.ErrInvalidOperand, err))
	}

	return chain(L, ops.AddIncrement(binArg(L, 2), v))
}

// ops:touch() → ops
func opTouch(L *lua.LState) int {
	ops := checkOperation(L)
	return chain(L, ops.AddTouch())
}

// ops:len() → number of operations
func opLen(L *lua.LState) int {
	ops := checkOperation(L)
	L.Push(lua.LNumber(ops.Len()))

	return 1
}

// stringOperand unwraps Lua strings so the list can check the operand type.
func stringOperand(lv lua.LValue) any {
	if s, ok := lv.(lua.LString); ok {
		return string(s)
	}

	return lv
}

// binArg returns the bin name at n. Anything but a string yields an empty
// name that the operation list rejects.
func binArg(L *lua.LState, n int) string {
	if s, ok := L.Get(n).(lua.LString); ok {
		return string(s)
	}

	return ""
}
