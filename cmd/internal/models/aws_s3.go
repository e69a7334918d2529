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

import "fmt"

// AwsS3 represents the configuration for AWS S3 script sources.
type AwsS3 struct {
	Region          string
	Profile         string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	RetryMaxAttempts       int
	RetryMaxBackoffSeconds int
	RetryBackoffSeconds    int
}

// Validate internal validation for struct params.
func (a *AwsS3) Validate() error {
	if a == nil {
		return nil
	}

	if (a.AccessKeyID == "") != (a.SecretAccessKey == "") {
		return fmt.Errorf("access key id and secret access key must be set together")
	}

	if a.RetryMaxAttempts < 0 {
		return fmt.Errorf("retry maximum attempts must be non-negative")
	}

	if a.RetryMaxBackoffSeconds < 0 {
		return fmt.Errorf("retry max backoff must be non-negative")
	}

	if a.RetryBackoffSeconds < 0 {
		return fmt.Errorf("retry backoff must be non-negative")
	}

	return nil
}
