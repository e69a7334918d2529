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

import (
	"fmt"
	"math"

	a "github.com/aerospike/aerospike-client-go/v7"
)

const (
	// TTLNeverExpire is the caller facing TTL for records that should never expire.
	TTLNeverExpire int64 = -1
	// TTLMax is the largest TTL the server accepts.
	TTLMax int64 = math.MaxUint32
	// ExpirationNever is the Aerospike server's special TTL value for records
	// that should never expire.
	ExpirationNever uint32 = math.MaxUint32

	// MaxBins is the maximum number of bins in a record or a bin list.
	MaxBins = math.MaxUint16
	// MaxBinNameLength is the maximum bin name length in bytes.
	MaxBinNameLength = 15
	// MaxNamespaceLength is the exclusive upper bound of a namespace name.
	MaxNamespaceLength = 32
	// MaxSetLength is the exclusive upper bound of a set name.
	MaxSetLength = 64
)

// Record is a typed write request: the bins to write and the TTL to apply.
// A nil bin value deletes the bin on write.
type Record struct {
	Bins a.BinMap
	TTL  int64
}

// NewRecord validates ttl and returns an empty record ready to receive bins.
func NewRecord(ttl int64) (*Record, error) {
	if err := ValidateTTL(ttl); err != nil {
		return nil, err
	}

	return &Record{
		Bins: make(a.BinMap),
		TTL:  ttl,
	}, nil
}

// Expiration maps the record TTL to the value sent in the write policy.
func (r *Record) Expiration() uint32 {
	if r.TTL == TTLNeverExpire {
		return ExpirationNever
	}

	return uint32(r.TTL)
}

// ValidateTTL checks that ttl is -1 or fits into an unsigned 32 bit integer.
func ValidateTTL(ttl int64) error {
	if ttl < TTLNeverExpire || ttl > TTLMax {
		return fmt.Errorf("%w: %d", ErrTTLRange, ttl)
	}

	return nil
}

// ValidateBinName checks bin name length.
func ValidateBinName(name string) error {
	if name == "" || len(name) > MaxBinNameLength {
		return fmt.Errorf("%w: %q must be 1..%d bytes", ErrInvalidBinName, name, MaxBinNameLength)
	}

	return nil
}

// ValidateBinCount checks that n bins fit into a single request.
func ValidateBinCount(n int) error {
	if n > MaxBins {
		return fmt.Errorf("%w: %d bins", ErrBinLimitExceeded, n)
	}

	return nil
}

// ValidateNamespace checks namespace and set name lengths.
func ValidateNamespace(namespace, set string) error {
	if namespace == "" || len(namespace) >= MaxNamespaceLength {
		return fmt.Errorf("%w: namespace %q must be shorter than %d bytes",
			ErrInvalidArgument, namespace, MaxNamespaceLength)
	}

	if len(set) >= MaxSetLength {
		return fmt.Errorf("%w: set %q must be shorter than %d bytes", ErrInvalidArgument, set, MaxSetLength)
	}

	return nil
}
