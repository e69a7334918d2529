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
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	ioStorage "github.com/aerospike/aslua/io/storage"
)

const gcpStorageType = "gs"

// Reader opens scripts stored as GCP cloud storage objects.
type Reader struct {
	client *storage.Client
}

// NewReader returns new GCP storage script reader.
func NewReader(client *storage.Client) *Reader {
	return &Reader{client: client}
}

// Open downloads the object loc.Path from bucket loc.Bucket.
func (r *Reader) Open(ctx context.Context, loc ioStorage.Location) (io.ReadCloser, error) {
	reader, err := r.client.Bucket(loc.Bucket).Object(loc.Path).NewReader(ctx)
	if err != nil {
		return nil, mapError(loc, err)
	}

	return reader, nil
}

// GetType returns the GCP storage scheme.
func (r *Reader) GetType() string {
	return gcpStorageType
}

func mapError(loc ioStorage.Location, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: %s", ioStorage.ErrNotFound, loc)
	}

	return fmt.Errorf("failed to open object %s: %w", loc, err)
}
