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


package aslua

import (
	"context"
	"errors"
	"testing"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
	"github.com/stretchr/testify/require"
)

func TestContext_PutGet(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	ctx := context.Background()

	rec, err := models.NewRecord(100)
	require.NoError(t, err)

	rec.Bins["a"] = int64(1)
	rec.Bins["b"] = "x"

	require.NoError(t, c.Put(ctx, "pk", rec))
	require.Equal(t, uint32(100), cluster.LastPolicy.Expiration)

	got, err := c.Get(ctx, "pk")
	require.NoError(t, err)
	require.Equal(t, a.BinMap{"a": int64(1), "b": "x"}, got.Bins)
	require.Equal(t, uint32(1), got.Generation)

	rec, err = models.NewRecord(models.TTLNeverExpire)
	require.NoError(t, err)

	rec.Bins["b"] = nil

	require.NoError(t, c.Put(ctx, "pk", rec))
	require.Equal(t, models.ExpirationNever, cluster.LastPolicy.Expiration)

	got, err = c.Get(ctx, "pk")
	require.NoError(t, err)
	require.Equal(t, a.BinMap{"a": int64(1)}, got.Bins)
	require.Equal(t, uint32(2), got.Generation)
}

func TestContext_PutInvalid(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)

	require.ErrorIs(t, c.Put(context.Background(), "pk", nil), models.ErrNotAMapping)
	require.ErrorIs(t, c.Put(context.Background(), "pk", &models.Record{}), models.ErrNotAMapping)
	require.Zero(t, cluster.CallCount("Put"))
}

func TestContext_NotFound(t *testing.T) {
	t.Parallel()

	c, _ := newTestContext(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	require.Error(t, err)
	require.True(t, isNotFound(err))

	found, err := c.Exists(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	existed, err := c.Remove(ctx, "missing")
	require.NoError(t, err)
	require.False(t, existed)
}

func TestContext_ExistsRemove(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	ctx := context.Background()

	cluster.Store(testNamespace, testSet, "pk", a.BinMap{"a": 1})

	found, err := c.Exists(ctx, "pk")
	require.NoError(t, err)
	require.True(t, found)

	existed, err := c.Remove(ctx, "pk")
	require.NoError(t, err)
	require.True(t, existed)

	_, ok := cluster.Record("pk")
	require.False(t, ok)
}

func TestContext_RemoteError(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	cluster.Err = a.ErrNetTimeout

	_, err := c.Exists(context.Background(), "pk")
	require.ErrorIs(t, err, a.ErrNetTimeout)

	_, err = c.Remove(context.Background(), "pk")
	require.ErrorIs(t, err, a.ErrNetTimeout)
}

func TestContext_Select(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	ctx := context.Background()

	cluster.Store(testNamespace, testSet, "pk", a.BinMap{"a": 1, "b": 2, "c": 3})

	got, err := c.Select(ctx, "pk", "a", "c")
	require.NoError(t, err)
	require.Equal(t, a.BinMap{"a": 1, "c": 3}, got.Bins)
	require.Equal(t, []string{"a", "c"}, cluster.LastBins)

	_, err = c.Select(ctx, "pk")
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = c.Select(ctx, "pk", "a_very_long_bin_name")
	require.ErrorIs(t, err, models.ErrInvalidBinName)
}

func TestContext_Operate(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)

	ops := models.NewOperationList(nil)
	require.NoError(t, ops.AddWrite("a", int64(1)))
	require.NoError(t, ops.AddIncrement("b", int64(2)))
	require.NoError(t, ops.AddAppend("s", "x"))
	require.NoError(t, ops.AddRead("a"))
	require.NoError(t, ops.AddTouch())

	_, err := c.Operate(context.Background(), "pk", ops)
	require.NoError(t, err)

	require.Equal(t, []*a.Operation{
		a.PutOp(a.NewBin("a", int64(1))),
		a.AddOp(a.NewBin("b", int64(2))),
		a.AppendOp(a.NewBin("s", "x")),
		a.GetBinOp("a"),
		a.TouchOp(),
	}, cluster.Operations)

	_, err = c.Operate(context.Background(), "pk", models.NewOperationList(nil))
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestContext_Apply(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	cluster.ExecuteResult = "done"

	res, err := c.Apply(context.Background(), "pk", &models.UDFCall{
		Module:   "mod",
		Function: "fn",
		Args:     []any{int64(1), "two", []any{int64(3)}},
	})
	require.NoError(t, err)
	require.Equal(t, "done", res)
	require.Equal(t, [2]string{"mod", "fn"}, cluster.LastUDF)
	require.Equal(t, []a.Value{
		a.NewValue(int64(1)),
		a.NewValue("two"),
		a.NewValue([]any{int64(3)}),
	}, cluster.LastArgs)

	res, err = c.Apply(context.Background(), "pk", &models.UDFCall{Module: "mod", Function: "fn"})
	require.NoError(t, err)
	require.Equal(t, "done", res)
	require.Nil(t, cluster.LastArgs)

	_, err = c.Apply(context.Background(), "pk", &models.UDFCall{Module: "mod"})
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = c.Apply(context.Background(), "pk", nil)
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestContext_InfoAndIndex(t *testing.T) {
	t.Parallel()

	c, cluster := newTestContext(t)
	ctx := context.Background()

	cluster.Info["build"] = "7.0.0"
	cluster.Info["10.0.0.1:3000:build"] = "6.4.0"
	cluster.Nodes = []models.InfoEntry{
		{Host: "10.0.0.1", Port: 3000, Response: "7.0.0"},
		{Host: "10.0.0.2", Port: 3000, Err: errors.New("timeout")},
	}

	resp, err := c.Info(ctx, "build", "", 0)
	require.NoError(t, err)
	require.Equal(t, "7.0.0", resp)

	resp, err = c.Info(ctx, "build", "10.0.0.1", 3000)
	require.NoError(t, err)
	require.Equal(t, "6.4.0", resp)

	_, err = c.Info(ctx, "build", "10.0.0.1", 70000)
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	require.Equal(t, 1, cluster.CallCount("RequestHostInfo"))

	_, err = c.Info(ctx, "", "", 0)
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	entries, err := c.InfoEach(ctx, "build")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "build", entries[0].Request)
	require.Error(t, entries[1].Err)

	require.NoError(t, c.IndexCreate(ctx, models.IndexInteger, "idx_age", "age"))

	idx, ok := cluster.Index("idx_age")
	require.True(t, ok)
	require.Equal(t, "age:1", idx)

	require.Error(t, c.IndexCreate(ctx, models.IndexString, "idx_age", "age"))
	require.ErrorIs(t, c.IndexCreate(ctx, models.IndexType(3), "idx", "age"), models.ErrInvalidArgument)
	require.ErrorIs(t, c.IndexCreate(ctx, models.IndexString, "", "age"), models.ErrInvalidArgument)

	require.NoError(t, c.IndexRemove(ctx, "idx_age"))

	_, ok = cluster.Index("idx_age")
	require.False(t, ok)
}

func TestClient_UDF(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UDFPut(ctx, "mod.lua", []byte("return 1")))
	require.ErrorIs(t, client.UDFPut(ctx, "dir/mod.lua", []byte("return 1")), models.ErrInvalidArgument)
	require.ErrorIs(t, client.UDFPut(ctx, "mod.lua", nil), models.ErrInvalidArgument)

	udf, err := client.UDFGet(ctx, "mod.lua")
	require.NoError(t, err)
	require.Equal(t, []byte("return 1"), udf.Content)

	list, err := client.UDFList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "mod.lua", list[0].Name)

	require.NoError(t, client.UDFRemove(ctx, "mod.lua"))
	require.Error(t, client.UDFRemove(ctx, "mod.lua"))

	_, err = client.UDFGet(ctx, "mod.lua")
	require.Error(t, err)
}
