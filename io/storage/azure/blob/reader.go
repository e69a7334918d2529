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


package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	ioStorage "github.com/aerospike/aslua/io/storage"
)

// Reader opens scripts stored as Azure blobs.
type Reader struct {
	client Client
}

// NewReader returns new Azure blob script reader.
func NewReader(client Client) *Reader {
	return &Reader{client: client}
}

// Open downloads blob loc.Path from container loc.Bucket.
func (r *Reader) Open(ctx context.Context, loc ioStorage.Location) (io.ReadCloser, error) {
	resp, err := r.client.DownloadStream(ctx, loc.Bucket, loc.Path, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ioStorage.ErrNotFound, loc)
		}

		return nil, fmt.Errorf("failed to open blob %s: %w", loc, err)
	}

	if resp.Body == nil {
		return nil, fmt.Errorf("blob %s has no body", loc)
	}

	return resp.Body, nil
}

// GetType returns the Azure blob scheme.
func (r *Reader) GetType() string {
	return azureBlobType
}

func isNotFound(err error) bool {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return true
	}

	var respErr *azcore.ResponseError

	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
