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
	"sync"

	"github.com/aerospike/aslua"
	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

// conn is the userdata behind aerospike.open.
type conn struct {
	mu     sync.Mutex
	client *aslua.Client
	closed bool
}

func (c *conn) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return models.ErrClosed
	}

	c.closed = true
	c.client.Close()

	return nil
}

func (c *conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func registerConn(L *lua.LState) {
	registerType(L, connTypeName, map[string]lua.LGFunction{
		"close":   connClose,
		"context": connContext,
		"udf":     connUDF,
	})
}

func checkConn(L *lua.LState) *conn {
	ud := L.CheckUserData(1)
	if c, ok := ud.Value.(*conn); ok {
		return c
	}

	L.ArgError(1, connTypeName+" expected")

	return nil
}

// conn:close() → true | false, msg
func connClose(L *lua.LState) int {
	c := checkConn(L)

	if err := c.close(); err != nil {
		return failFalse(L, err)
	}

	return pushTrue(L)
}

// conn:context(ns, set) → ctx | nil, msg
func connContext(L *lua.LState) int {
	c := checkConn(L)

	if c.isClosed() {
		return failNil(L, models.ErrClosed)
	}

	ns, err := checkString(L, 2, "namespace")
	if err != nil {
		return failNil(L, err)
	}

	set, err := optString(L, 3, "set")
	if err != nil {
		return failNil(L, err)
	}

	ctx, err := c.client.Context(ns, set)
	if err != nil {
		return failNil(L, err)
	}

	L.Push(newUserData(L, &luaContext{conn: c, ctx: ctx}, contextTypeName))

	return 1
}

// conn:udf() → udf | nil, msg
func connUDF(L *lua.LState) int {
	c := checkConn(L)

	if c.isClosed() {
		return failNil(L, models.ErrClosed)
	}

	L.Push(newUserData(L, &udf{conn: c}, udfTypeName))

	return 1
}
