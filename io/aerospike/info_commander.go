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
	"log/slog"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aerospike-management-lib/info"
	"github.com/go-logr/logr"
)

// hostInfoClient runs info commands against a single host, which does not
// need to be a member of the connected cluster.
type hostInfoClient interface {
	RequestInfo(cmd ...string) (map[string]string, error)
}

type hostInfoFactory func(host *a.Host) hostInfoClient

func newHostInfoFactory(clientPolicy *a.ClientPolicy, logger *slog.Logger) hostInfoFactory {
	infoLogger := logr.FromSlogHandler(logger.Handler())

	return func(host *a.Host) hostInfoClient {
		return info.NewAsInfo(infoLogger, host, clientPolicy)
	}
}
