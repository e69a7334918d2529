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
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aerospike/aslua/io/compression"
)

// Storage schemes.
const (
	SchemeLocal = "file"
	SchemeS3    = "s3"
	SchemeGCS   = "gs"
	SchemeAzure = "azblob"
)

// Location addresses a single script.
// Bucket holds the S3/GCS bucket or the Azure container and is empty for
// local files.
type Location struct {
	Scheme string
	Bucket string
	Path   string
}

// ParseLocation parses a local path or a scheme://bucket/path URL.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty location", ErrInvalidLocation)
	}

	if !strings.Contains(raw, "://") {
		return Location{Scheme: SchemeLocal, Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}

	if u.Scheme == SchemeLocal {
		if u.Path == "" {
			return Location{}, fmt.Errorf("%w: %q has no path", ErrInvalidLocation, raw)
		}

		return Location{Scheme: SchemeLocal, Path: u.Path}, nil
	}

	objectPath := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || objectPath == "" {
		return Location{}, fmt.Errorf("%w: %q must be %s://bucket/path", ErrInvalidLocation, raw, u.Scheme)
	}

	return Location{Scheme: u.Scheme, Bucket: u.Host, Path: objectPath}, nil
}

// Compressed reports whether the script is zstd compressed.
func (l Location) Compressed() bool {
	return strings.HasSuffix(l.Path, compression.Extension)
}

// Name returns the base name of the script.
func (l Location) Name() string {
	return path.Base(l.Path)
}

func (l Location) String() string {
	if l.Scheme == SchemeLocal {
		return l.Path
	}

	return l.Scheme + "://" + l.Bucket + "/" + l.Path
}
