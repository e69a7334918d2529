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
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Extension marks zstd compressed script sources.
const Extension = ".zst"

type reader struct {
	r       io.ReadCloser
	decoder *zstd.Decoder
}

// NewReader returns a reader that decompresses the zstd stream of r.
// On Close, both the decoder and r are closed.
func NewReader(r io.ReadCloser) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}

	return &reader{
		r:       r,
		decoder: decoder,
	}, nil
}

func (cr *reader) Read(p []byte) (int, error) {
	n, err := cr.decoder.Read(p)

	return n, wrapError(err)
}

func (cr *reader) Close() error {
	cr.decoder.Close()

	return cr.r.Close()
}
