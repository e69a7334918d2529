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

package asinfo

import (
	"fmt"
	"regexp"
	"strconv"

	a "github.com/aerospike/aerospike-client-go/v7"
)

var aerospikeVersionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)

// AerospikeVersionSupportsQueryShow is the first server version that
// reports background jobs through query-show.
var AerospikeVersionSupportsQueryShow = AerospikeVersion{6, 0, 0}

type AerospikeVersion struct {
	Major int
	Minor int
	Patch int
}

func (av AerospikeVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", av.Major, av.Minor, av.Patch)
}

func (av AerospikeVersion) IsGreater(other AerospikeVersion) bool {
	if av.Major != other.Major {
		return av.Major > other.Major
	}

	if av.Minor != other.Minor {
		return av.Minor > other.Minor
	}

	return av.Patch > other.Patch
}

func (av AerospikeVersion) IsGreaterOrEqual(other AerospikeVersion) bool {
	return av.IsGreater(other) || av == other
}

// infoGetter defines the methods for doing info requests
// with the Aerospike database.
//
//go:generate mockery --name infoGetter
type infoGetter interface {
	RequestInfo(infoPolicy *a.InfoPolicy, commands ...string) (map[string]string, a.Error)
}

// infoNode is a cluster node that can report its own address.
type infoNode interface {
	infoGetter
	GetHost() *a.Host
}

func getAerospikeVersion(conn infoGetter, policy *a.InfoPolicy) (AerospikeVersion, error) {
	versionResp, err := conn.RequestInfo(policy, cmdBuild)
	if err != nil {
		return AerospikeVersion{}, err
	}

	versionStr, ok := versionResp[cmdBuild]
	if !ok {
		return AerospikeVersion{}, fmt.Errorf("failed to get Aerospike version, info response missing 'build' key")
	}

	return parseAerospikeVersion(versionStr)
}

func parseAerospikeVersion(versionStr string) (AerospikeVersion, error) {
	matches := aerospikeVersionRegex.FindStringSubmatch(versionStr)
	if len(matches) != 4 {
		return AerospikeVersion{}, fmt.Errorf("failed to parse Aerospike version from '%s'", versionStr)
	}

	parts := make([]int, 3)

	for i := range parts {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return AerospikeVersion{}, fmt.Errorf("failed to parse Aerospike version part %d: %w", i, err)
		}

		parts[i] = n
	}

	return AerospikeVersion{
		Major: parts[0],
		Minor: parts[1],
		Patch: parts[2],
	}, nil
}
