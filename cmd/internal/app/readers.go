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


package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aerospike/aslua/cmd/internal/config"
	ioStorage "github.com/aerospike/aslua/io/storage"
	"github.com/aerospike/aslua/io/storage/aws/s3"
	"github.com/aerospike/aslua/io/storage/azure/blob"
	"github.com/aerospike/aslua/io/storage/gcp/storage"
	"github.com/aerospike/aslua/io/storage/local"
)

// usedSchemes returns the set of storage schemes the scripts are read from.
func usedSchemes(scripts []string) (map[string]bool, error) {
	schemes := make(map[string]bool)

	for _, s := range scripts {
		loc, err := ioStorage.ParseLocation(s)
		if err != nil {
			return nil, err
		}

		schemes[loc.Scheme] = true
	}

	return schemes, nil
}

// newScriptRouter creates readers only for the storages the scripts use,
// so cloud credentials are not required for local runs.
func newScriptRouter(
	ctx context.Context,
	params *config.Params,
	scripts []string,
	logger *slog.Logger,
) (*ioStorage.Router, error) {
	schemes, err := usedSchemes(scripts)
	if err != nil {
		return nil, err
	}

	readers := []ioStorage.Reader{local.NewReader()}

	for scheme := range schemes {
		var reader ioStorage.Reader

		switch scheme {
		case ioStorage.SchemeLocal:
			continue
		case ioStorage.SchemeS3:
			client, err := newS3Client(ctx, params.AwsS3)
			if err != nil {
				return nil, err
			}

			reader = s3.NewReader(client)
		case ioStorage.SchemeGCS:
			client, err := newGcpClient(ctx, params.GcpStorage)
			if err != nil {
				return nil, err
			}

			reader = storage.NewReader(client)
		case ioStorage.SchemeAzure:
			client, err := newAzureClient(params.AzureBlob)
			if err != nil {
				return nil, err
			}

			reader = blob.NewReader(client)
		default:
			return nil, fmt.Errorf("%w: %q", ioStorage.ErrUnsupportedScheme, scheme)
		}

		logger.Debug("script storage initialized", slog.String("type", reader.GetType()))
		readers = append(readers, reader)
	}

	return ioStorage.NewRouter(readers,
		ioStorage.WithLogger(logger),
		ioStorage.WithMaxSize(params.Script.MaxScriptSize),
	), nil
}
