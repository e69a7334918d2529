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

package models

import a "github.com/aerospike/aerospike-client-go/v7"

// RecordStream delivers the results of a scan or a query in order.
// The results channel is closed when the stream is exhausted.
type RecordStream interface {
	Results() <-chan *a.Result
	Close() error
}
