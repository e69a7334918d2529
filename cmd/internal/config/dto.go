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
	"strings"

	"github.com/aerospike/aslua/cmd/internal/models"
	"github.com/aerospike/tools-common-go/client"
	"github.com/aerospike/tools-common-go/flags"
)

// fileConfig is the layout of the YAML configuration file.
type fileConfig struct {
	App     *appSection     `yaml:"app"`
	Cluster *clusterSection `yaml:"cluster"`
	Script  *scriptSection  `yaml:"script"`
	Aws     *struct {
		S3 *awsS3Section `yaml:"s3"`
	} `yaml:"aws"`
	Gcp *struct {
		Storage *gcpStorageSection `yaml:"storage"`
	} `yaml:"gcp"`
	Azure *struct {
		Blob *azureBlobSection `yaml:"blob"`
	} `yaml:"azure"`
}

type appSection struct {
	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log-level"`
	LogJSON  bool   `yaml:"log-json"`
}

func (a *appSection) apply(m *models.App) {
	m.Verbose = a.Verbose
	m.LogJSON = a.LogJSON

	if a.LogLevel != "" {
		m.LogLevel = a.LogLevel
	}
}

// clusterSection defines the configuration for connecting to an Aerospike
// cluster, including seeds, auth, and TLS settings.
type clusterSection struct {
	Seeds []struct {
		Host    string `yaml:"host"`
		TLSName string `yaml:"tls-name"`
		Port    int    `yaml:"port"`
	} `yaml:"seeds"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Auth               string `yaml:"auth"`
	ClientTimeout      *int64 `yaml:"client-timeout"`
	ClientIdleTimeout  *int64 `yaml:"client-idle-timeout"`
	ClientLoginTimeout *int64 `yaml:"client-login-timeout"`
	TLS                struct {
		Enable          bool   `yaml:"enable"`
		Name            string `yaml:"name"`
		Protocols       string `yaml:"protocols"`
		CaFile          string `yaml:"ca-file"`
		CaPath          string `yaml:"ca-path"`
		CertFile        string `yaml:"cert-file"`
		KeyFile         string `yaml:"key-file"`
		KeyFilePassword string `yaml:"key-file-password"`
	} `yaml:"tls"`
}

//nolint:gocyclo // This is a long mapping function, no need to brake it into small ones.
func (c *clusterSection) toAerospikeConfig() (*client.AerospikeConfig, error) {
	f := flags.NewDefaultAerospikeFlags()

	hosts := make([]string, 0, len(c.Seeds))

	for i := range c.Seeds {
		hostStr := c.Seeds[i].Host
		if c.Seeds[i].TLSName != "" {
			hostStr = fmt.Sprintf("%s:%s", hostStr, c.Seeds[i].TLSName)
		}

		if c.Seeds[i].Port != 0 {
			hostStr = fmt.Sprintf("%s:%v", hostStr, c.Seeds[i].Port)
		}

		hosts = append(hosts, hostStr)
	}

	if len(hosts) > 0 {
		var seeds flags.HostTLSPortSliceFlag
		if err := seeds.Set(strings.Join(hosts, ",")); err != nil {
			return nil, fmt.Errorf("failed to set seeds: %w", err)
		}

		f.Seeds = seeds
	}

	if c.User != "" {
		f.User = c.User
	}

	if c.Password != "" {
		var psw flags.PasswordFlag
		if err := psw.Set(c.Password); err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		f.Password = psw
	}

	if c.Auth != "" {
		var authMode flags.AuthModeFlag
		if err := authMode.Set(c.Auth); err != nil {
			return nil, fmt.Errorf("failed to set auth mode: %w", err)
		}

		f.AuthMode = authMode
	}

	f.TLSEnable = c.TLS.Enable
	f.TLSName = c.TLS.Name

	if c.TLS.Protocols != "" {
		var tlsProtocols flags.TLSProtocolsFlag
		if err := tlsProtocols.Set(c.TLS.Protocols); err != nil {
			return nil, fmt.Errorf("failed to set tls protocols: %w", err)
		}

		f.TLSProtocols = tlsProtocols
	}

	if c.TLS.CaFile != "" {
		var caFile flags.CertFlag
		if err := caFile.Set(c.TLS.CaFile); err != nil {
			return nil, fmt.Errorf("failed to set tls root ca file: %w", err)
		}

		f.TLSRootCAFile = caFile
	}

	if c.TLS.CaPath != "" {
		var caPath flags.CertPathFlag
		if err := caPath.Set(c.TLS.CaPath); err != nil {
			return nil, fmt.Errorf("failed to set tls root ca path: %w", err)
		}

		f.TLSRootCAPath = caPath
	}

	if c.TLS.CertFile != "" {
		var certFile flags.CertFlag
		if err := certFile.Set(c.TLS.CertFile); err != nil {
			return nil, fmt.Errorf("failed to set tls cert file: %w", err)
		}

		f.TLSCertFile = certFile
	}

	if c.TLS.KeyFile != "" {
		var keyFile flags.CertFlag
		if err := keyFile.Set(c.TLS.KeyFile); err != nil {
			return nil, fmt.Errorf("failed to set tls key file: %w", err)
		}

		f.TLSKeyFile = keyFile
	}

	if c.TLS.KeyFilePassword != "" {
		var keyPass flags.PasswordFlag
		if err := keyPass.Set(c.TLS.KeyFilePassword); err != nil {
			return nil, fmt.Errorf("failed to set tls key file password: %w", err)
		}

		f.TLSKeyFilePass = keyPass
	}

	return f.NewAerospikeConfig(), nil
}

func (c *clusterSection) applyPolicy(m *models.ClientPolicy) {
	setInt64(&m.Timeout, c.ClientTimeout)
	setInt64(&m.IdleTimeout, c.ClientIdleTimeout)
	setInt64(&m.LoginTimeout, c.ClientLoginTimeout)
}

type scriptSection struct {
	Parallel         *int     `yaml:"parallel"`
	ScriptTimeout    *int64   `yaml:"script-timeout"`
	PollBase         *int64   `yaml:"poll-base"`
	PollMax          *int64   `yaml:"poll-max"`
	PollMultiplier   *float64 `yaml:"poll-multiplier"`
	MetricsAddr      *string  `yaml:"metrics-addr"`
	OpsPerSecond     *int     `yaml:"ops-per-second"`
	MaxParallelScans *int     `yaml:"max-parallel-scans"`
	MaxScriptSize    *int64   `yaml:"max-script-size"`
}

func (s *scriptSection) apply(m *models.Script) {
	setInt(&m.Parallel, s.Parallel)
	setInt64(&m.ScriptTimeout, s.ScriptTimeout)
	setInt64(&m.PollBase, s.PollBase)
	setInt64(&m.PollMax, s.PollMax)
	setInt(&m.OpsPerSecond, s.OpsPerSecond)
	setInt(&m.MaxParallelScans, s.MaxParallelScans)
	setInt64(&m.MaxScriptSize, s.MaxScriptSize)

	if s.PollMultiplier != nil {
		m.PollMultiplier = *s.PollMultiplier
	}

	if s.MetricsAddr != nil {
		m.MetricsAddr = *s.MetricsAddr
	}
}

type awsS3Section struct {
	Region           string `yaml:"region"`
	Profile          string `yaml:"profile"`
	EndpointOverride string `yaml:"endpoint-override"`
	AccessKeyID      string `yaml:"access-key-id"`
	SecretAccessKey  string `yaml:"secret-access-key"`
	RetryMaxAttempts *int   `yaml:"retry-max-attempts"`
	RetryMaxBackoff  *int   `yaml:"retry-max-backoff"`
	RetryBackoff     *int   `yaml:"retry-backoff"`
}

func (a *awsS3Section) apply(m *models.AwsS3) {
	m.Region = a.Region
	m.Profile = a.Profile
	m.Endpoint = a.EndpointOverride
	m.AccessKeyID = a.AccessKeyID
	m.SecretAccessKey = a.SecretAccessKey
	setInt(&m.RetryMaxAttempts, a.RetryMaxAttempts)
	setInt(&m.RetryMaxBackoffSeconds, a.RetryMaxBackoff)
	setInt(&m.RetryBackoffSeconds, a.RetryBackoff)
}

type gcpStorageSection struct {
	KeyFile                string   `yaml:"key-file"`
	EndpointOverride       string   `yaml:"endpoint-override"`
	RetryMaxAttempts       *int     `yaml:"retry-max-attempts"`
	RetryMaxBackoff        *int     `yaml:"retry-max-backoff"`
	RetryInitBackoff       *int     `yaml:"retry-init-backoff"`
	RetryBackoffMultiplier *float64 `yaml:"retry-backoff-multiplier"`
}

func (g *gcpStorageSection) apply(m *models.GcpStorage) {
	m.KeyFile = g.KeyFile
	m.Endpoint = g.EndpointOverride
	setInt(&m.RetryMaxAttempts, g.RetryMaxAttempts)
	setInt(&m.RetryBackoffMaxSeconds, g.RetryMaxBackoff)
	setInt(&m.RetryBackoffInitSeconds, g.RetryInitBackoff)

	if g.RetryBackoffMultiplier != nil {
		m.RetryBackoffMultiplier = *g.RetryBackoffMultiplier
	}
}

type azureBlobSection struct {
	AccountName      string `yaml:"account-name"`
	AccountKey       string `yaml:"account-key"`
	TenantID         string `yaml:"tenant-id"`
	ClientID         string `yaml:"client-id"`
	ClientSecret     string `yaml:"client-secret"`
	EndpointOverride string `yaml:"endpoint-override"`
	RetryMaxAttempts *int   `yaml:"retry-max-attempts"`
	RetryTryTimeout  *int   `yaml:"retry-try-timeout"`
	RetryDelay       *int   `yaml:"retry-delay"`
	RetryMaxDelay    *int   `yaml:"retry-max-delay"`
}

func (a *azureBlobSection) apply(m *models.AzureBlob) {
	m.AccountName = a.AccountName
	m.AccountKey = a.AccountKey
	m.TenantID = a.TenantID
	m.ClientID = a.ClientID
	m.ClientSecret = a.ClientSecret
	m.Endpoint = a.EndpointOverride
	setInt(&m.RetryMaxAttempts, a.RetryMaxAttempts)
	setInt(&m.RetryTryTimeoutSeconds, a.RetryTryTimeout)
	setInt(&m.RetryDelaySeconds, a.RetryDelay)
	setInt(&m.RetryMaxDelaySeconds, a.RetryMaxDelay)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setInt64(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}
