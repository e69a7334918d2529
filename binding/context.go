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

	"github.com/aerospike/aslua"
	"github.com/aerospike/aslua/encoding/luaval"
	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

const (
	optMaxRecords       = "maxRecords"
	optRecordsPerSecond = "recordsPerSecond"
	optModule           = "module"
	optFunction         = "func"
	optArgs             = "args"
)

// luaContext is the userdata behind conn:context.
type luaContext struct {
	conn *conn
	ctx  *aslua.Context
}

func registerContext(L *lua.LState) {
	registerType(L, contextTypeName, map[string]lua.LGFunction{
		"put":            ctxPut,
		"get":            ctxGet,
		"select":         ctxSelect,
		"exists":         ctxExists,
		"remove":         ctxRemove,
		"operation":      ctxOperation,
		"operate":        ctxOperate,
		"apply":          ctxApply,
		"batchGet":       ctxBatchGet,
		"batchExists":    ctxBatchExists,
		"scanEach":       ctxScanEach,
		"scanBackground": ctxScanBackground,
		"query":          ctxQuery,
		"info":           ctxInfo,
		"infoEach":       ctxInfoEach,
		"indexCreate":    ctxIndexCreate,
		"indexRemove":    ctxIndexRemove,
	})
}

func checkContext(L *lua.LState) *luaContext {
	ud := L.CheckUserData(1)
	if c, ok := ud.Value.(*luaContext); ok {
		return c
	}

	L.ArgError(1, contextTypeName+" expected")

	return nil
}

// ctx:put(pk, bins[, ttl]) → true | false, msg
func ctxPut(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failFalse(L, err)
	}

	ttl, err := optInt(L, 4, "ttl", models.TTLNeverExpire)
	if err != nil {
		return failFalse(L, err)
	}

	rec, err := luaval.BuildRecord(L.Get(3), ttl)
	if err != nil {
		return failFalse(L, err)
	}

	if err = c.ctx.Put(stateContext(L), pk, rec); err != nil {
		return failFalse(L, err)
	}

	return pushTrue(L)
}

// ctx:get(pk) → {ttl, gen, bins} | nil, msg
func ctxGet(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	rec, err := c.ctx.Get(stateContext(L), pk)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.RecordToLua(L, rec))

	return 1
}

// ctx:select(pk, bin...) → {ttl, gen, bins} | nil, msg
func ctxSelect(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	bins, err := luaval.BinNames(L, 3)
	if err != nil {
		return failNil(L, err)
	}

	rec, err := c.ctx.Select(stateContext(L), pk, bins...)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.RecordToLua(L, rec))

	return 1
}

// ctx:exists(pk) → bool | nil, msg
func ctxExists(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	found, err := c.ctx.Exists(stateContext(L), pk)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(lua.LBool(found))

	return 1
}

// ctx:remove(pk) → bool | nil, msg
func ctxRemove(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	existed, err := c.ctx.Remove(stateContext(L), pk)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(lua.LBool(existed))

	return 1
}

// ctx:operation() → ops
func ctxOperation(L *lua.LState) int {
	checkContext(L)

	L.Push(newUserData(L, models.NewOperationList(luaval.ToTypedConverter), operationTypeName))

	return 1
}

// ctx:operate(pk, ops) → {ttl, gen, bins} | nil, msg
func ctxOperate(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	ops, ok := toOperationList(L.Get(3))
	if !ok {
		return failNil(L, fmt.Errorf("%w: operations must be created with ctx:operation()",
			models.ErrInvalidArgument))
	}

	rec, err := c.ctx.Operate(stateContext(L), pk, ops)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.RecordToLua(L, rec))

	return 1
}

// ctx:apply(pk, module, fn, args...) → value | nil, msg
func ctxApply(L *lua.LState) int {
	c := checkContext(L)

	pk, err := checkKey(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	call, err := checkUDFCall(L, 3)
	if err != nil {
		return failNil(L, err)
	}

	res, err := c.ctx.Apply(stateContext(L), pk, call)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.ToLua(L, res))

	return 1
}

// checkUDFCall reads module, function and the trailing arguments starting at n.
func checkUDFCall(L *lua.LState, n int) (*models.UDFCall, error) {
	module, err := checkString(L, n, "module")
	if err != nil {
		return nil, err
	}

	function, err := checkString(L, n+1, "function")
	if err != nil {
		return nil, err
	}

	args, err := luaval.ToArgs(L, n+2)
	if err != nil {
		return nil, err
	}

	return &models.UDFCall{Module: module, Function: function, Args: args}, nil
}

// ctx:batchGet(pk...) → {pk = record | errmsg} | nil, msg
func ctxBatchGet(L *lua.LState) int {
	c := checkContext(L)

	pks, err := checkKeys(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	entries, err := c.ctx.BatchGet(stateContext(L), pks)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.BatchToLua(L, entries))

	return 1
}

// ctx:batchExists(pk...) → {pk = bool | errmsg} | nil, msg
func ctxBatchExists(L *lua.LState) int {
	c := checkContext(L)

	pks, err := checkKeys(L, 2)
	if err != nil {
		return failNil(L, err)
	}

	entries, err := c.ctx.BatchExists(stateContext(L), pks)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.BatchToLua(L, entries))

	return 1
}

func checkKeys(L *lua.LState, start int) ([]string, error) {
	top := L.GetTop()
	if top < start {
		return nil, fmt.Errorf("%w: at least one key is required", models.ErrInvalidArgument)
	}

	pks := make([]string, 0, top-start+1)

	for i := start; i <= top; i++ {
		pk, err := checkKey(L, i)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i-start+1, err)
		}

		pks = append(pks, pk)
	}

	return pks, nil
}

// ctx:scanEach([opts][, bin...]) → {{pk, ttl, gen, bins}...} | nil, msg
func ctxScanEach(L *lua.LState) int {
	c := checkContext(L)

	binsFrom := 2

	var opts aslua.ScanOptions

	if tb, ok := L.Get(2).(*lua.LTable); ok {
		binsFrom = 3

		maxRecords, err := fieldInt(tb, optMaxRecords)
		if err != nil {
			return failNil(L, err)
		}

		rps, err := fieldInt(tb, optRecordsPerSecond)
		if err != nil {
			return failNil(L, err)
		}

		opts.MaxRecords = maxRecords
		opts.RecordsPerSecond = int(rps)
	} else if L.Get(2) == lua.LNil && L.GetTop() >= 2 {
		binsFrom = 3
	}

	bins, err := luaval.BinNames(L, binsFrom)
	if err != nil {
		return failNil(L, err)
	}

	opts.Bins = bins

	items, err := c.ctx.ScanEach(stateContext(L), opts)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.ScanItemsToLua(L, items))

	return 1
}

// ctx:scanBackground([opts]) → bool | false, msg
func ctxScanBackground(L *lua.LState) int {
	c := checkContext(L)

	tb, err := optTable(L, 2, "options")
	if err != nil {
		return failFalse(L, err)
	}

	var opts aslua.BackgroundOptions

	if tb != nil {
		if opts, err = backgroundOptions(tb); err != nil {
			return failFalse(L, err)
		}
	}

	done, err := c.ctx.ScanBackground(stateContext(L), opts)
	if err != nil {
		return failFalse(L, err)
	}

	L.Push(lua.LBool(done))

	return 1
}

func backgroundOptions(tb *lua.LTable) (aslua.BackgroundOptions, error) {
	var opts aslua.BackgroundOptions

	rps, err := fieldInt(tb, optRecordsPerSecond)
	if err != nil {
		return opts, err
	}

	opts.RecordsPerSecond = int(rps)

	module, err := fieldString(tb, optModule)
	if err != nil {
		return opts, err
	}

	function, err := fieldString(tb, optFunction)
	if err != nil {
		return opts, err
	}

	if module == "" && function == "" {
		return opts, nil
	}

	args, err := luaval.ToArgsTable(tb.RawGetString(optArgs))
	if err != nil {
		return opts, err
	}

	opts.UDF = &models.UDFCall{Module: module, Function: function, Args: args}

	return opts, nil
}

// ctx:query(spec[, module, fn, args...]) → {...} | nil, msg
func ctxQuery(L *lua.LState) int {
	c := checkContext(L)

	spec, err := luaval.BuildQuery(c.ctx.Namespace(), c.ctx.Set(), L.Get(2))
	if err != nil {
		return failNil(L, err)
	}

	if L.GetTop() < 3 {
		items, err := c.ctx.Query(stateContext(L), spec)
		if err != nil {
			return failNil(L, err)
		}

		L.Push(luaval.ScanItemsToLua(L, items))

		return 1
	}

	if spec.Aggregate, err = checkUDFCall(L, 3); err != nil {
		return failNil(L, err)
	}

	values, err := c.ctx.QueryAggregate(stateContext(L), spec)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.ValuesToLua(L, values))

	return 1
}

// ctx:info(req[, host, port]) → string | nil, msg
func ctxInfo(L *lua.LState) int {
	c := checkContext(L)

	req, err := checkString(L, 2, "request")
	if err != nil {
		return failNil(L, err)
	}

	host, err := optString(L, 3, "host")
	if err != nil {
		return failNil(L, err)
	}

	port, err := optInt(L, 4, "port", DefaultPort)
	if err != nil {
		return failNil(L, err)
	}

	resp, err := c.ctx.Info(stateContext(L), req, host, int(port))
	if err != nil {
		return failNil(L, err)
	}

	L.Push(lua.LString(resp))

	return 1
}

// ctx:infoEach(req) → {{host, port, req, info | err}...} | nil, msg
func ctxInfoEach(L *lua.LState) int {
	c := checkContext(L)

	req, err := checkString(L, 2, "request")
	if err != nil {
		return failNil(L, err)
	}

	entries, err := c.ctx.InfoEach(stateContext(L), req)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(luaval.InfoEntriesToLua(L, entries))

	return 1
}

// ctx:indexCreate(type, name, bin) → true | false, msg
func ctxIndexCreate(L *lua.LState) int {
	c := checkContext(L)

	typ, err := optInt(L, 2, "index type", 0)
	if err != nil {
		return failFalse(L, err)
	}

	name, err := checkString(L, 3, "index name")
	if err != nil {
		return failFalse(L, err)
	}

	bin, err := checkString(L, 4, "bin")
	if err != nil {
		return failFalse(L, err)
	}

	if err = c.ctx.IndexCreate(stateContext(L), models.IndexType(typ), name, bin); err != nil {
		return failFalse(L, err)
	}

	return pushTrue(L)
}

// ctx:indexRemove(name) → true | false, msg
func ctxIndexRemove(L *lua.LState) int {
	c := checkContext(L)

	name, err := checkString(L, 2, "index name")
	if err != nil {
		return failFalse(L, err)
	}

	if err = c.ctx.IndexRemove(stateContext(L), name); err != nil {
		return failFalse(L, err)
	}

	return pushTrue(L)
}
