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
	"fmt"
	"io"
	"log/slog"

	"github.com/aerospike/aslua/io/compression"
)

// Reader opens scripts from one kind of storage.
type Reader interface {
	// Open returns a stream of the script content. A missing script
	// results in an error wrapping ErrNotFound.
	Open(ctx context.Context, loc Location) (io.ReadCloser, error)
	// GetType returns the scheme served by the reader.
	GetType() string
}

// Router dispatches script locations to the reader registered for their scheme.
type Router struct {
	Options

	readers map[string]Reader
}

// NewRouter returns a router over the given readers. A later reader for the
// same scheme replaces an earlier one.
func NewRouter(readers []Reader, opts ...Opt) *Router {
	r := &Router{
		Options: defaultOptions(),
		readers: make(map[string]Reader, len(readers)),
	}

	for _, opt := range opts {
		opt(&r.Options)
	}

	for _, rd := range readers {
		if rd != nil {
			r.readers[rd.GetType()] = rd
		}
	}

	return r
}

// Read loads the script at the raw location, decompressing it when the
// location has the zstd extension.
func (r *Router) Read(ctx context.Context, raw string) ([]byte, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	rd, ok := r.readers[loc.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, loc.Scheme)
	}

	logger := r.Logger.With(slog.String("location", loc.String()))
	logger.Debug("reading script", slog.String("type", rd.GetType()))

	body, err := rd.Open(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", loc, err)
	}

	src := body

	if loc.Compressed() {
		if src, err = compression.NewReader(body); err != nil {
			body.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", loc, err)
		}
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, r.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}

	if int64(len(data)) > r.MaxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, loc, r.MaxSize)
	}

	logger.Debug("script loaded", slog.Int("size", len(data)))

	return data, nil
}
