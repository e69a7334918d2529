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

// AzureBlob represents the configuration for Azure Blob script sources.
type AzureBlob struct {
	// Account name + key auth
	AccountName string
	AccountKey  string
	// Azure Active directory
	TenantID     string
	ClientID     string
	ClientSecret string

	Endpoint string

	RetryMaxAttempts       int
	RetryTryTimeoutSeconds int
	RetryDelaySeconds      int
	RetryMaxDelaySeconds   int
}

// Validate internal validation for struct params. The endpoint is checked
// only when an Azure script source is used.
func (a *AzureBlob) Validate() error {
	if a == nil {
		return nil
	}

	if (a.AccountName == "") != (a.AccountKey == "") {
		return fmt.Errorf("account name and account key must be set together")
	}

	if a.RetryMaxAttempts < 0 {
		return fmt.Errorf("retry maximum attempts must be non-negative")
	}

	if a.RetryTryTimeoutSeconds < 0 || a.RetryDelaySeconds < 0 || a.RetryMaxDelaySeconds < 0 {
		return fmt.Errorf("retry timeouts must be non-negative")
	}

	return nil
}
