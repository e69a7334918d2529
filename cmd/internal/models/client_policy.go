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

// ClientPolicy contains the Aerospike client connection timeouts in milliseconds.
type ClientPolicy struct {
	Timeout      int64
	IdleTimeout  int64
	LoginTimeout int64
}

func (c *ClientPolicy) Validate() error {
	if c == nil {
		return nil
	}

	if c.Timeout < 0 {
		return fmt.Errorf("client-timeout must be non-negative")
	}

	if c.IdleTimeout < 0 {
		return fmt.Errorf("client-idle-timeout must be non-negative")
	}

	if c.LoginTimeout < 0 {
		return fmt.Errorf("client-login-timeout must be non-negative")
	}

	return nil
}
