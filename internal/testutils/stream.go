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


package testutils

import (
	"sync/atomic"

	a "github.com/aerospike/aerospike-client-go/v7"
)

// Stream is a record stream over a fixed list of results.
type Stream struct {
	results chan *a.Result
	closed  atomic.Bool
}

// NewStream returns a stream that delivers results and then ends.
func NewStream(results []*a.Result) *Stream {
	ch := make(chan *a.Result, len(results))
	for _, r := range results {
		ch <- r
	}

	close(ch)

	return &Stream{results: ch}
}

func (s *Stream) Results() <-chan *a.Result {
	return s.results
}

func (s *Stream) Close() error {
	s.closed.Store(true)
	return nil
}

// IsClosed reports whether Close was called.
func (s *Stream) IsClosed() bool {
	return s.closed.Load()
}

// RecordResult builds a successful stream result for a record with the
// given digest.
func RecordResult(namespace, set string, digest []byte, bins a.BinMap) *a.Result {
	key, _ := a.NewKeyWithDigest(namespace, set, nil, digest)

	return &a.Result{Record: &a.Record{Key: key, Bins: bins, Generation: 1, Expiration: 100}}
}

// Digest returns a 20 byte digest starting with prefix.
func Digest(prefix ...byte) []byte {
	d := make([]byte, 20)
	copy(d, prefix)

	return d
}
