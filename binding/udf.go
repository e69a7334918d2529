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
	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

// udf is the userdata behind conn:udf.
type udf struct {
	conn *conn
}

func registerUDF(L *lua.LState) {
	registerType(L, udfTypeName, map[string]lua.LGFunction{
		"put":    udfPut,
		"get":    udfGet,
		"list":   udfList,
		"remove": udfRemove,
	})
}

func checkUDF(L *lua.LState) *udf {
	ud := L.CheckUserData(1)
	if u, ok := ud.Value.(*udf); ok {
		return u
	}

	L.ArgError(1, udfTypeName+" expected")

	return nil
}

// udf:put(name, source) → true | nil, msg
func udfPut(L *lua.LState) int {
	u := checkUDF(L)

	name, err := checkString(L, 2, "udf name")
	if err != nil {
		return failNil(L, err)
	}

	source, err := checkString(L, 3, "udf source")
	if err != nil {
		return failNil(L, err)
	}

	if err = u.conn.client.UDFPut(stateContext(L), name, []byte(source)); err != nil {
		return failNil(L, err)
	}

	return pushTrue(L)
}

// udf:get(name) → {name, size, hash, content} | nil, msg
func udfGet(L *lua.LState) int {
	u := checkUDF(L)

	name, err := checkString(L, 2, "udf name")
	if err != nil {
		return failNil(L, err)
	}

	file, err := u.conn.client.UDFGet(stateContext(L), name)
	if err != nil {
		return failNil(L, err)
	}

	tb := L.CreateTable(0, 4)
	tb.RawSetString("name", lua.LString(file.Name))
	tb.RawSetString("size", lua.LNumber(file.Size))
	tb.RawSetString("hash", lua.LString(file.Hash))
	tb.RawSetString("content", lua.LString(file.Content))

	L.Push(tb)

	return 1
}

// udf:list() → {{name, hash, type}...} | nil, msg
func udfList(L *lua.LState) int {
	u := checkUDF(L)

	files, err := u.conn.client.UDFList(stateContext(L))
	if err != nil {
		return failNil(L, err)
	}

	L.Push(udfFilesToLua(L, files))

	return 1
}

func udfFilesToLua(L *lua.LState, files []*models.UDFFile) *lua.LTable {
	tb := L.CreateTable(len(files), 0)

	for _, f := range files {
		row := L.CreateTable(0, 3)
		row.RawSetString("name", lua.LString(f.Name))
		row.RawSetString("hash", lua.LString(f.Hash))
		row.RawSetString("type", lua.LString(f.Type))
		tb.Append(row)
	}

	return tb
}

// udf:remove(name) → true | nil, msg
func udfRemove(L *lua.LState) int {
	u := checkUDF(L)

	name, err := checkString(L, 2, "udf name")
	if err != nil {
		return failNil(L, err)
	}

	if err = u.conn.client.UDFRemove(stateContext(L), name); err != nil {
		return failNil(L, err)
	}

	return pushTrue(L)
}
