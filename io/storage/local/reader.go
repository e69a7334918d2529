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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	ioStorage "github.com/aerospike/aslua/io/storage"
)

const localType = ioStorage.SchemeLocal

// Reader opens scripts from the local file system.
type Reader struct{}

// NewReader returns a local file reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open opens the file at loc.Path.
func (r *Reader) Open(ctx context.Context, loc ioStorage.Location) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(loc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ioStorage.ErrNotFound, loc.Path)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", loc.Path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", loc.Path)
	}

	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", loc.Path, err)
	}

	return f, nil
}

// GetType returns the local storage scheme.
func (r *Reader) GetType() string {
	return localType
}
