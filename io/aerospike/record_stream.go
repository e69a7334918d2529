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

package aerospike

import (
	"errors"

	a "github.com/aerospike/aerospike-client-go/v7"
)

// recordStream exposes an Aerospike Recordset as a models.RecordStream.
type recordStream struct {
	rs *a.Recordset
}

func newRecordStream(rs *a.Recordset) *recordStream {
	return &recordStream{rs: rs}
}

func (s *recordStream) Results() <-chan *a.Result {
	return s.rs.Results()
}

// Close stops the underlying scan or query. Closing an exhausted stream is
// not an error.
func (s *recordStream) Close() error {
	if aerr := s.rs.Close(); aerr != nil && !errors.Is(aerr, a.ErrRecordsetClosed) {
		return aerr
	}

	return nil
}
