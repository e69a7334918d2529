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
	"errors"
	"testing"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestToLua(t *testing.T) {
	t.Parallel()

	L := newState(t)

	require.Equal(t, lua.LNil, ToLua(L, nil))
	require.Equal(t, lua.LTrue, ToLua(L, true))
	require.Equal(t, lua.LNumber(5), ToLua(L, 5))
	require.Equal(t, lua.LNumber(5), ToLua(L, uint32(5)))
	require.Equal(t, lua.LNumber(2.5), ToLua(L, 2.5))
	require.Equal(t, lua.LString("raw"), ToLua(L, []byte("raw")))
	require.Equal(t, lua.LString("s"), ToLua(L, a.NewStringValue("s")))

	list, ok := ToLua(L, []any{int64(1), nil, "x"}).(*lua.LTable)
	require.True(t, ok)
	require.Equal(t, 2, list.Len())
	require.Equal(t, lua.LString("x"), list.RawGetInt(2))

	m, ok := ToLua(L, map[any]any{int64(1): "one", "k": nil, nil: "dropped"}).(*lua.LTable)
	require.True(t, ok)
	require.Equal(t, lua.LString("one"), m.RawGetInt(1))
	require.Equal(t, lua.LNil, m.RawGetString("k"))

	pairs, ok := ToLua(L, []a.MapPair{{Key: "a", Value: int64(1)}}).(*lua.LTable)
	require.True(t, ok)
	require.Equal(t, lua.LNumber(1), pairs.RawGetString("a"))
}

func TestToLua_ClientTypes(t *testing.T) {
	t.Parallel()

	L := newState(t)

	point := `{"type":"Point","coordinates":[1,2]}`
	require.Equal(t, lua.LString(point), ToLua(L, a.GeoJSONValue(point)))
	require.Equal(t, lua.LString(point), ToLua(L, a.NewGeoJSONValue(point)))
	require.Equal(t, lua.LString([]byte{0, 1, 2}), ToLua(L, a.NewHLLValue([]byte{0, 1, 2})))

	results, ok := ToLua(L, a.OpResults{int64(1), "x"}).(*lua.LTable)
	require.True(t, ok)
	require.Equal(t, 2, results.Len())
	require.Equal(t, lua.LNumber(1), results.RawGetInt(1))
	require.Equal(t, lua.LString("x"), results.RawGetInt(2))

	type opaque struct{ n int }
	require.Equal(t, lua.LString("{7}"), ToLua(L, opaque{n: 7}))
}

func TestBatchToLua(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tb := BatchToLua(L, []models.ResultEntry{
		{Key: "found", Status: models.StatusOK, Record: &a.Record{Bins: a.BinMap{"a": 1}}},
		{Key: "exists", Status: models.StatusOK},
		{Key: "missing", Status: models.StatusNotFound},
		{Key: "broken", Status: models.StatusError, Message: "timeout"},
	})

	rec, ok := tb.RawGetString("found").(*lua.LTable)
	require.True(t, ok)
	require.Equal(t, lua.LNumber(1), rec.RawGetString("bins").(*lua.LTable).RawGetString("a"))
	require.Equal(t, lua.LTrue, tb.RawGetString("exists"))
	require.Equal(t, lua.LFalse, tb.RawGetString("missing"))
	require.Equal(t, lua.LString("timeout"), tb.RawGetString("broken"))
}

func TestScanItemsToLua(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tb := ScanItemsToLua(L, []models.ScanItem{
		{Index: 1, PK: "001aff", TTL: 10, Generation: 2, Bins: a.BinMap{"a": "v"}},
		{Index: 2, PK: "002bff", TTL: 0, Generation: 1},
	})

	require.Equal(t, 2, tb.Len())

	first := tb.RawGetInt(1).(*lua.LTable)
	require.Equal(t, lua.LString("001aff"), first.RawGetString("pk"))
	require.Equal(t, lua.LNumber(10), first.RawGetString("ttl"))
	require.Equal(t, lua.LNumber(2), first.RawGetString("gen"))
	require.NotEqual(t, lua.LNil, first.RawGetString("bins"))

	second := tb.RawGetInt(2).(*lua.LTable)
	require.Equal(t, lua.LNil, second.RawGetString("bins"))
}

func TestInfoEntriesToLua(t *testing.T) {
	t.Parallel()

	L := newState(t)

	tb := InfoEntriesToLua(L, []models.InfoEntry{
		{Host: "10.0.0.1", Port: 3000, Request: "build", Response: "7.0.0"},
		{Host: "10.0.0.2", Port: 3000, Request: "build", Err: errors.New("timeout")},
	})

	ok := tb.RawGetInt(1).(*lua.LTable)
	require.Equal(t, lua.LString("10.0.0.1"), ok.RawGetString("host"))
	require.Equal(t, lua.LNumber(3000), ok.RawGetString("port"))
	require.Equal(t, lua.LString("build"), ok.RawGetString("req"))
	require.Equal(t, lua.LString("7.0.0"), ok.RawGetString("info"))
	require.Equal(t, lua.LNil, ok.RawGetString("err"))

	failed := tb.RawGetInt(2).(*lua.LTable)
	require.Equal(t, lua.LString("timeout"), failed.RawGetString("err"))
	require.Equal(t, lua.LNil, failed.RawGetString("info"))
}
