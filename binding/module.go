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


// Package binding exposes the aslua client to Lua scripts as the
// "aerospike" module.
//
//	local aerospike = require("aerospike")
//	local conn = aerospike.open("127.0.0.1", 3000)
//	local ctx = conn:context("test", "demo")
//	ctx:put("pk", {a = 1})
package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aerospike/aslua"
	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name scripts require.
const ModuleName = "aerospike"

// DefaultPort is used by open when no port is given.
const DefaultPort = 3000

const (
	connTypeName      = "aerospike.conn"
	contextTypeName   = "aerospike.context"
	operationTypeName = "aerospike.operation"
	udfTypeName       = "aerospike.udf"
)

// Dialer connects to a cluster. An empty host asks for the default cluster.
type Dialer func(ctx context.Context, host string, port int) (*aslua.Client, error)

// Module is the "aerospike" Lua module. It keeps track of the connections
// scripts open so the host can close the ones scripts leave behind.
type Module struct {
	dial   Dialer
	logger *slog.Logger

	mu    sync.Mutex
	conns []*conn
}

// ModuleOpt is a functional option that allows configuring the [Module].
type ModuleOpt func(*Module)

// WithLogger sets the logger for the [Module].
func WithLogger(logger *slog.Logger) ModuleOpt {
	return func(m *Module) {
		m.logger = logger
	}
}

// NewModule returns a module that opens connections with dial.
func NewModule(dial Dialer, opts ...ModuleOpt) *Module {
	m := &Module{
		dial:   dial,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Preload makes the module available to require in L.
func (m *Module) Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, m.loader)
}

// Close closes every connection opened through the module that scripts
// did not close.
func (m *Module) Close() {
	m.mu.Lock()
	conns := m.conns
	m.conns = nil
	m.mu.Unlock()

	for _, c := range conns {
		if err := c.close(); err == nil {
			m.logger.Debug("closed connection left open by script")
		}
	}
}

func (m *Module) loader(L *lua.LState) int {
	registerConn(L)
	registerContext(L)
	registerOperation(L)
	registerUDF(L)

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"open": m.open,
	})

	L.SetField(mod, "IDX_INTEGER", lua.LNumber(models.IndexInteger))
	L.SetField(mod, "IDX_STRING", lua.LNumber(models.IndexString))
	L.SetField(mod, "ORDER_ASC", lua.LNumber(models.OrderAsc))
	L.SetField(mod, "ORDER_DESC", lua.LNumber(models.OrderDesc))

	L.Push(mod)

	return 1
}

// open(host, port) → conn | nil, msg
func (m *Module) open(L *lua.LState) int {
	host, err := optString(L, 1, "host")
	if err != nil {
		return failNil(L, err)
	}

	port, err := optInt(L, 2, "port", DefaultPort)
	if err != nil {
		return failNil(L, err)
	}

	if m.dial == nil {
		return failNil(L, errors.New("no cluster configured"))
	}

	client, err := m.dial(stateContext(L), host, int(port))
	if err != nil {
		return failNil(L, fmt.Errorf("failed to connect: %w", err))
	}

	c := &conn{client: client}

	m.mu.Lock()
	m.conns = append(m.conns, c)
	m.mu.Unlock()

	L.Push(newUserData(L, c, connTypeName))

	return 1
}
