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


package compression

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestReader(t *testing.T) {
	t.Parallel()

	script := []byte(`local c = aerospike.open() c:close()`)
	src := &closeRecorder{Reader: bytes.NewReader(compress(t, script))}

	r, err := NewReader(src)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, script, out)

	require.NoError(t, r.Close())
	assert.True(t, src.closed)
}

func TestReader_Corrupted(t *testing.T) {
	t.Parallel()

	src := &closeRecorder{Reader: bytes.NewReader([]byte("print('not compressed')"))}

	r, err := NewReader(src)
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, ErrCorrupted)
	require.NoError(t, r.Close())
}

func TestIsCorruptedError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "magic mismatch", err: zstd.ErrMagicMismatch, expected: true},
		{name: "reserved block type", err: zstd.ErrReservedBlockType, expected: true},
		{name: "window too small", err: zstd.ErrWindowSizeTooSmall, expected: true},
		{name: "wrapped window exceeded", err: fmt.Errorf("read: %w", zstd.ErrWindowSizeExceeded), expected: true},
		{name: "eof", err: io.EOF, expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsCorruptedError(tt.err))
		})
	}
}
