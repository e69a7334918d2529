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


package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	ioStorage "github.com/aerospike/aslua/io/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsHttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Reader opens scripts stored as S3 objects.
type Reader struct {
	client Client
}

// NewReader returns new S3 script reader.
// For S3 client next parameters must be set:
//   - o.UsePathStyle = true
//   - o.BaseEndpoint = &endpoint - if endpoint != ""
func NewReader(client Client) *Reader {
	return &Reader{client: client}
}

// Open downloads the object loc.Path from bucket loc.Bucket.
func (r *Reader) Open(ctx context.Context, loc ioStorage.Location) (io.ReadCloser, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Path),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ioStorage.ErrNotFound, loc)
		}

		return nil, fmt.Errorf("failed to get object %s: %w", loc, err)
	}

	if out.Body == nil {
		return nil, fmt.Errorf("object %s has no body", loc)
	}

	return out.Body, nil
}

// GetType returns the S3 scheme.
func (r *Reader) GetType() string {
	return s3type
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		var httpErr *awsHttp.ResponseError
		if errors.As(opErr.Err, &httpErr) && httpErr.HTTPStatusCode() == http.StatusNotFound {
			return true
		}
	}

	return false
}
