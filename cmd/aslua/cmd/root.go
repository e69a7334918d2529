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


package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aerospike/aslua/cmd/internal/app"
	"github.com/aerospike/aslua/cmd/internal/config"
	"github.com/aerospike/aslua/cmd/internal/flags"
	"github.com/aerospike/aslua/cmd/internal/logging"
	asFlags "github.com/aerospike/tools-common-go/flags"
	"github.com/spf13/cobra"
)

const VersionDev = "dev"

// Cmd represents the base command when called without any subcommands
type Cmd struct {
	// Version params.
	appVersion string
	commitHash string

	out io.Writer

	flagsApp          *flags.App
	flagsAerospike    *asFlags.AerospikeFlags
	flagsClientPolicy *flags.ClientPolicy
	flagsScript       *flags.Script
	flagsAws          *flags.AwsS3
	flagsGcp          *flags.GcpStorage
	flagsAzure        *flags.AzureBlob
}

func NewCmd(appVersion, commitHash string) *cobra.Command {
	c := &Cmd{
		appVersion: appVersion,
		commitHash: commitHash,
		out:        os.Stdout,

		flagsApp:          flags.NewApp(),
		flagsAerospike:    asFlags.NewDefaultAerospikeFlags(),
		flagsClientPolicy: flags.NewClientPolicy(),
		flagsScript:       flags.NewScript(),
		flagsAws:          flags.NewAwsS3(),
		flagsGcp:          flags.NewGcpStorage(),
		flagsAzure:        flags.NewAzureBlob(),
	}

	rootCmd := &cobra.Command{
		Use:   "aslua [flags] SCRIPT...",
		Short: "Aerospike Lua script runner",
		RunE:  c.run,
	}

	// Disable sorting
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.SilenceUsage = true

	appFlagSet := c.flagsApp.NewFlagSet()
	aerospikeFlagSet := c.flagsAerospike.NewFlagSet(func(str string) string { return str })
	clientPolicyFlagSet := c.flagsClientPolicy.NewFlagSet()
	scriptFlagSet := c.flagsScript.NewFlagSet()
	awsFlagSet := c.flagsAws.NewFlagSet()
	gcpFlagSet := c.flagsGcp.NewFlagSet()
	azureFlagSet := c.flagsAzure.NewFlagSet()

	rootCmd.PersistentFlags().AddFlagSet(appFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(aerospikeFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(clientPolicyFlagSet)
	rootCmd.Flags().AddFlagSet(scriptFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(awsFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(gcpFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(azureFlagSet)

	// Beautify help and usage.
	helpFunc := func() {
		fmt.Fprintln(c.out, "Welcome to the Aerospike Lua script runner!")
		fmt.Fprintln(c.out, "-------------------------------------------")
		fmt.Fprintln(c.out, "\nUsage:")
		fmt.Fprintln(c.out, "  aslua [flags] SCRIPT...")
		fmt.Fprintln(c.out, "\nScripts are local paths or s3://bucket/key, gs://bucket/object,\n"+
			"azblob://container/blob URLs. Scripts ending with .zst are zstd decompressed.\n"+
			"Inside a script, aerospike.open() without a host uses the cluster set with the flags below.")

		fmt.Fprintln(c.out, "\nGeneral Flags:")
		appFlagSet.PrintDefaults()

		fmt.Fprintln(c.out, "\nAerospike Client Flags:")
		aerospikeFlagSet.PrintDefaults()
		clientPolicyFlagSet.PrintDefaults()

		fmt.Fprintln(c.out, "\nScript Flags:")
		scriptFlagSet.PrintDefaults()

		fmt.Fprintln(c.out, "\nAWS Flags:\n"+
			"--s3-endpoint-override is used in case you want to use minio, instead of AWS.")
		awsFlagSet.PrintDefaults()

		fmt.Fprintln(c.out, "\nGCP Flags:")
		gcpFlagSet.PrintDefaults()

		fmt.Fprintln(c.out, "\nAzure Flags:\n"+
			"Flag --azure-endpoint is mandatory for azblob:// scripts.\n"+
			"For authentication you can use --azure-account-name and --azure-account-key, or \n"+
			"--azure-tenant-id, --azure-client-id and azure-client-secret.")
		azureFlagSet.PrintDefaults()
	}

	rootCmd.SetUsageFunc(func(_ *cobra.Command) error {
		helpFunc()
		return nil
	})
	rootCmd.SetHelpFunc(func(_ *cobra.Command, _ []string) {
		helpFunc()
	})

	return rootCmd
}

func (c *Cmd) run(cmd *cobra.Command, args []string) error {
	// Show version.
	if c.flagsApp.Version {
		c.printVersion()

		return nil
	}

	// Without scripts there is nothing to run, show help.
	if len(args) == 0 || c.flagsApp.Help {
		return cmd.Help()
	}

	params := &config.Params{
		App:          c.flagsApp.GetApp(),
		ClientConfig: c.flagsAerospike.NewAerospikeConfig(),
		ClientPolicy: c.flagsClientPolicy.GetClientPolicy(),
		Script:       c.flagsScript.GetScript(),
		AwsS3:        c.flagsAws.GetAwsS3(),
		GcpStorage:   c.flagsGcp.GetGcpStorage(),
		AzureBlob:    c.flagsAzure.GetAzureBlob(),
	}

	if err := config.Load(params); err != nil {
		return err
	}

	// Init logger.
	logger, err := logging.NewLogger(os.Stderr, params.App.LogLevel, params.App.Verbose, params.App.LogJSON)
	if err != nil {
		return err
	}

	service, err := app.NewService(cmd.Context(), params, args, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	stats, err := service.Run(cmd.Context(), args)

	logging.ReportRun(c.out, stats, params.App.LogJSON, logger)

	if err != nil {
		logger.Error("scripts failed", slog.Int("failed", stats.Failed()))

		return err
	}

	return nil
}

func (c *Cmd) printVersion() {
	version := c.appVersion
	if c.appVersion == VersionDev {
		version += " (" + c.commitHash + ")"
	}

	fmt.Fprintf(c.out, "version: %s\n", version)
}
