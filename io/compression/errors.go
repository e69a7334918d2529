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
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ErrCorrupted is returned when a compressed script cannot be decoded.
var ErrCorrupted = errors.New("corrupted compressed data")

// IsCorruptedError checks if the error is one of the zstd corruption errors.
func IsCorruptedError(err error) bool {
	return errors.Is(err, zstd.ErrReservedBlockType) ||
		errors.Is(err, zstd.ErrCompressedSizeTooBig) ||
		errors.Is(err, zstd.ErrWindowSizeExceeded) ||
		errors.Is(err, zstd.ErrWindowSizeTooSmall) ||
		errors.Is(err, zstd.ErrMagicMismatch) ||
		errors.Is(err, zstd.ErrBlockTooSmall)
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if IsCorruptedError(err) {
		return fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return err
}
