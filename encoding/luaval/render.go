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

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

const (
	fieldTTL  = "ttl"
	fieldGen  = "gen"
	fieldBins = "bins"
	fieldPK   = "pk"
	fieldHost = "host"
	fieldPort = "port"
	fieldReq  = "req"
	fieldInfo = "info"
	fieldErr  = "err"
)

// ToLua converts a typed value returned by the client into a Lua value.
// Nil list items and map entries with a nil key or value are dropped.
// GeoJSON becomes its JSON text, HLL its raw bytes, and the per bin result
// list of a multi operation command a sequence. Values of any other type
// are rendered with fmt.Sprint.
func ToLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int8:
		return lua.LNumber(val)
	case int16:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case uint16:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []byte:
		return lua.LString(val)
	case a.GeoJSONValue:
		return lua.LString(val)
	case a.HLLValue:
		return lua.LString(val)
	case a.OpResults:
		return ToLua(L, []any(val))
	case []any:
		tb := L.CreateTable(len(val), 0)
		for _, item := range val {
			tb.Append(ToLua(L, item))
		}

		return tb
	case []string:
		tb := L.CreateTable(len(val), 0)
		for _, item := range val {
			tb.Append(lua.LString(item))
		}

		return tb
	case map[any]any:
		tb := L.CreateTable(0, len(val))
		for k, item := range val {
			key := ToLua(L, k)
			if key == lua.LNil {
				continue
			}

			tb.RawSet(key, ToLua(L, item))
		}

		return tb
	case map[string]any:
		return stringMapToLua(L, val)
	case a.BinMap:
		return stringMapToLua(L, val)
	case []a.MapPair:
		tb := L.CreateTable(0, len(val))
		for _, pair := range val {
			key := ToLua(L, pair.Key)
			if key == lua.LNil {
				continue
			}

			tb.RawSet(key, ToLua(L, pair.Value))
		}

		return tb
	case a.Value:
		return ToLua(L, val.GetObject())
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

func stringMapToLua(L *lua.LState, m map[string]any) *lua.LTable {
	tb := L.CreateTable(0, len(m))
	for k, item := range m {
		tb.RawSetString(k, ToLua(L, item))
	}

	return tb
}

// RecordToLua renders a record as {ttl, gen, bins}.
func RecordToLua(L *lua.LState, rec *a.Record) *lua.LTable {
	tb := L.CreateTable(0, 3)
	tb.RawSetString(fieldTTL, lua.LNumber(rec.Expiration))
	tb.RawSetString(fieldGen, lua.LNumber(rec.Generation))
	tb.RawSetString(fieldBins, stringMapToLua(L, rec.Bins))

	return tb
}

// BatchToLua renders batch entries as a table keyed by primary key.
// Found records render as records, existence checks as booleans
// and failed items as their error message.
func BatchToLua(L *lua.LState, entries []models.ResultEntry) *lua.LTable {
	tb := L.CreateTable(0, len(entries))

	for i := range entries {
		e := &entries[i]

		var v lua.LValue

		switch e.Status {
		case models.StatusOK:
			if e.Record != nil {
				v = RecordToLua(L, e.Record)
			} else {
				v = lua.LTrue
			}
		case models.StatusNotFound:
			v = lua.LFalse
		default:
			v = lua.LString(e.Message)
		}

		tb.RawSetString(e.Key, v)
	}

	return tb
}

// ScanItemsToLua renders scan items as a sequence of {pk, ttl, gen, bins}.
// The bins field is present only when the record has bins.
func ScanItemsToLua(L *lua.LState, items []models.ScanItem) *lua.LTable {
	tb := L.CreateTable(len(items), 0)

	for i := range items {
		item := &items[i]

		row := L.CreateTable(0, 4)
		row.RawSetString(fieldPK, lua.LString(item.PK))
		row.RawSetString(fieldTTL, lua.LNumber(item.TTL))
		row.RawSetString(fieldGen, lua.LNumber(item.Generation))

		if len(item.Bins) > 0 {
			row.RawSetString(fieldBins, stringMapToLua(L, item.Bins))
		}

		tb.RawSetInt(item.Index, row)
	}

	return tb
}

// InfoEntriesToLua renders per node info results as a sequence of
// {host, port, req, info} or {host, port, err}.
func InfoEntriesToLua(L *lua.LState, entries []models.InfoEntry) *lua.LTable {
	tb := L.CreateTable(len(entries), 0)

	for i := range entries {
		e := &entries[i]

		row := L.CreateTable(0, 4)
		row.RawSetString(fieldHost, lua.LString(e.Host))
		row.RawSetString(fieldPort, lua.LNumber(e.Port))

		if e.Err != nil {
			row.RawSetString(fieldErr, lua.LString(e.Err.Error()))
		} else {
			row.RawSetString(fieldReq, lua.LString(e.Request))
			row.RawSetString(fieldInfo, lua.LString(e.Response))
		}

		tb.Append(row)
	}

	return tb
}

// ValuesToLua renders a list of typed values as a sequence.
func ValuesToLua(L *lua.LState, values []any) *lua.LTable {
	tb := L.CreateTable(len(values), 0)
	for _, v := range values {
		tb.Append(ToLua(L, v))
	}

	return tb
}
