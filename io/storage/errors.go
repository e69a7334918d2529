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

import "errors"

var (
	// ErrNotFound is returned when a script source does not exist.
	ErrNotFound = errors.New("script not found")
	// ErrUnsupportedScheme is returned for locations no reader is registered for.
	ErrUnsupportedScheme = errors.New("unsupported storage scheme")
	// ErrInvalidLocation is returned for malformed script locations.
	ErrInvalidLocation = errors.New("invalid script location")
	// ErrTooLarge is returned when a script exceeds the configured size limit.
	ErrTooLarge = errors.New("script too large")
)
