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

import "errors"

var (
	// ErrInvalidShape is returned for tables that are neither a list nor a map.
	ErrInvalidShape = errors.New("invalid table shape")
	// ErrUnsupportedType is returned for values that have no typed equivalent.
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrNotAMapping is returned when a bin table is not a map of bin names.
	ErrNotAMapping = errors.New("bins must be a non empty hash table")
	ErrBinLimitExceeded = errors.New("bin limit exceeded")
	ErrInvalidBinName   = errors.New("invalid bin name")
	ErrTTLRange         = errors.New("ttl out of range")
	ErrInvalidOperand   = errors.New("invalid operand")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrInvalidArgument  = errors.New("invalid argument")
	// ErrIteration is returned when a scan or query delivers a malformed item.
	ErrIteration = errors.New("iteration aborted")
	ErrClosed    = errors.New("connection closed")
)
