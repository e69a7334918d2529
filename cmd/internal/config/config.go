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


package config

import (
	"fmt"

	"github.com/aerospike/aslua/cmd/internal/models"
	"github.com/aerospike/tools-common-go/client"
)

// Params groups everything needed to run scripts.
type Params struct {
	App          *models.App
	ClientConfig *client.AerospikeConfig
	ClientPolicy *models.ClientPolicy
	Script       *models.Script
	AwsS3        *models.AwsS3
	GcpStorage   *models.GcpStorage
	AzureBlob    *models.AzureBlob
}

// Load applies the YAML file set with --config over the flag values.
// Keys missing from the file keep their flag values. Without a config file
// params are left untouched.
func Load(params *Params) error {
	if params.App == nil || params.App.Config == "" {
		return nil
	}

	var cfg fileConfig
	if err := decodeFromFile(params.App.Config, &cfg); err != nil {
		return err
	}

	return cfg.applyTo(params)
}

func (c *fileConfig) applyTo(p *Params) error {
	if c.App != nil {
		c.App.apply(p.App)
	}

	if c.Cluster != nil {
		asConfig, err := c.Cluster.toAerospikeConfig()
		if err != nil {
			return fmt.Errorf("failed to map to aerospike config: %w", err)
		}

		p.ClientConfig = asConfig
		c.Cluster.applyPolicy(p.ClientPolicy)
	}

	if c.Script != nil {
		c.Script.apply(p.Script)
	}

	if c.Aws != nil && c.Aws.S3 != nil {
		c.Aws.S3.apply(p.AwsS3)
	}

	if c.Gcp != nil && c.Gcp.Storage != nil {
		c.Gcp.Storage.apply(p.GcpStorage)
	}

	if c.Azure != nil && c.Azure.Blob != nil {
		c.Azure.Blob.apply(p.AzureBlob)
	}

	return nil
}

// Validate checks every parameter group.
func (p *Params) Validate() error {
	if p.ClientConfig == nil {
		return fmt.Errorf("aerospike client config is required")
	}

	if err := p.App.Validate(); err != nil {
		return err
	}

	if err := p.ClientPolicy.Validate(); err != nil {
		return fmt.Errorf("invalid client policy: %w", err)
	}

	if err := p.Script.Validate(); err != nil {
		return fmt.Errorf("invalid script parameters: %w", err)
	}

	if err := p.AwsS3.Validate(); err != nil {
		return fmt.Errorf("invalid s3 parameters: %w", err)
	}

	if err := p.GcpStorage.Validate(); err != nil {
		return fmt.Errorf("invalid gcp parameters: %w", err)
	}

	if err := p.AzureBlob.Validate(); err != nil {
		return fmt.Errorf("invalid azure parameters: %w", err)
	}

	return nil
}
