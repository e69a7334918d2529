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


package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	ioStorage "github.com/aerospike/aslua/io/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Open(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "script.lua")
	require.NoError(t, os.WriteFile(file, []byte("return 1"), 0o600))

	r := NewReader()
	assert.Equal(t, ioStorage.SchemeLocal, r.GetType())

	body, err := r.Open(context.Background(), ioStorage.Location{Scheme: ioStorage.SchemeLocal, Path: file})
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, "return 1", string(data))
}

func TestReader_OpenErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewReader()

	_, err := r.Open(context.Background(), ioStorage.Location{Path: filepath.Join(dir, "missing.lua")})
	require.ErrorIs(t, err, ioStorage.ErrNotFound)

	_, err = r.Open(context.Background(), ioStorage.Location{Path: dir})
	require.ErrorContains(t, err, "is a directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Open(ctx, ioStorage.Location{Path: dir})
	require.ErrorIs(t, err, context.Canceled)
}
