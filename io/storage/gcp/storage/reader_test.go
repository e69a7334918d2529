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


package storage

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/storage"
	ioStorage "github.com/aerospike/aslua/io/storage"
	"github.com/stretchr/testify/assert"
)

func TestReader_GetType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ioStorage.SchemeGCS, NewReader(nil).GetType())
}

func TestMapError(t *testing.T) {
	t.Parallel()

	loc := ioStorage.Location{Scheme: "gs", Bucket: "scripts", Path: "a.lua"}

	tests := []struct {
		name     string
		err      error
		notFound bool
	}{
		{name: "object", err: storage.ErrObjectNotExist, notFound: true},
		{name: "bucket", err: storage.ErrBucketNotExist, notFound: true},
		{name: "wrapped", err: fmt.Errorf("read: %w", storage.ErrObjectNotExist), notFound: true},
		{name: "other", err: errors.New("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := mapError(loc, tt.err)
			assert.Equal(t, tt.notFound, errors.Is(err, ioStorage.ErrNotFound))
			assert.Contains(t, err.Error(), "gs://scripts/a.lua")
		})
	}
}
