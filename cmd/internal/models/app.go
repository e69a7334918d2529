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
	"log/slog"
)

// App contains the general application parameters.
type App struct {
	Help    bool
	Version bool
	Verbose bool
	// Set log level for verbose output.
	LogLevel string
	// Format logs as JSON, for parsing by external tools.
	LogJSON bool
	// Path to YAML configuration file.
	Config string
}

func (a *App) Validate() error {
	if a == nil {
		return nil
	}

	if a.Verbose {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(a.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", a.LogLevel, err)
		}
	}

	return nil
}
