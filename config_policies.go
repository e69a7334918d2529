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


package aslua

import (
	"fmt"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
)

// Policies holds the per command policies used by the [Client].
// Nil fields are replaced with the Aerospike client defaults.
type Policies struct {
	Write *a.WritePolicy
	Read  *a.BasePolicy
	Batch *a.BatchPolicy
	Scan  *a.ScanPolicy
	Query *a.QueryPolicy
	// Poll defines the delays between status checks of background jobs.
	Poll *models.RetryPolicy
}

// NewDefaultPolicies returns policies with default values.
func NewDefaultPolicies() *Policies {
	return &Policies{
		Write: a.NewWritePolicy(0, 0),
		Read:  a.NewPolicy(),
		Batch: a.NewBatchPolicy(),
		Scan:  a.NewScanPolicy(),
		Query: a.NewQueryPolicy(),
		Poll:  models.NewDefaultRetryPolicy(),
	}
}

func (p *Policies) validate() error {
	if err := p.Poll.Validate(); err != nil {
		return fmt.Errorf("invalid poll policy: %w", err)
	}

	return nil
}

// withDefaults returns a copy of p where every nil policy is set to its default.
func (p *Policies) withDefaults() *Policies {
	d := NewDefaultPolicies()
	if p == nil {
		return d
	}

	out := *p

	if out.Write == nil {
		out.Write = d.Write
	}

	if out.Read == nil {
		out.Read = d.Read
	}

	if out.Batch == nil {
		out.Batch = d.Batch
	}

	if out.Scan == nil {
		out.Scan = d.Scan
	}

	if out.Query == nil {
		out.Query = d.Query
	}

	if out.Poll == nil {
		out.Poll = d.Poll
	}

	return &out
}

// writePolicy returns a copy of the write policy with the given expiration.
func (p *Policies) writePolicy(expiration uint32) *a.WritePolicy {
	wp := *p.Write
	wp.Expiration = expiration

	return &wp
}

func (p *Policies) scanPolicy() *a.ScanPolicy {
	sp := *p.Scan
	return &sp
}

func (p *Policies) queryPolicy() *a.QueryPolicy {
	qp := *p.Query
	return &qp
}
