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
	"io"
	"log/slog"
)

// DefaultMaxSize limits the size of a single decoded script.
const DefaultMaxSize = 16 << 20

// Options contains the optional parameters of a Router.
type Options struct {
	Logger *slog.Logger
	// MaxSize is the maximum number of decoded bytes read from one script.
	MaxSize int64
}

type Opt func(*Options)

// WithLogger sets the logger used for tracing reads.
func WithLogger(logger *slog.Logger) Opt {
	return func(r *Options) {
		r.Logger = logger
	}
}

// WithMaxSize sets the maximum decoded script size.
func WithMaxSize(size int64) Opt {
	return func(r *Options) {
		r.MaxSize = size
	}
}

func defaultOptions() Options {
	return Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxSize: DefaultMaxSize,
	}
}
