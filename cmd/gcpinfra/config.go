package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
)

func configCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Resolve and print the provider configuration",
		Long: `Load the credentials, probe the default region and print the result.

When the region probe fails the configuration still resolves, using the
fallback zone ` + gcpconf.FallbackZone + `. Run with --verbose to see why.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := gcpconf.GetOrCreate(cmd.Context(), flags.providerOptions())
			if err != nil {
				return fmt.Errorf("failed to resolve provider configuration: %w", err)
			}
			printConfig(cmd, conf)
			return nil
		},
	}
}

func printConfig(cmd *cobra.Command, conf *gcpconf.Config) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Credentials: %s\n", conf.CredentialsPath)
	fmt.Fprintf(w, "Project: %s\n", conf.ProjectID)
	fmt.Fprintf(w, "Service account: %s\n", conf.ServiceAccountEmail)
	fmt.Fprintf(w, "Scopes: %s\n", strings.Join(conf.Scopes, ","))
	fmt.Fprintf(w, "Default region: %s\n", conf.DefaultRegion)
	fmt.Fprintf(w, "Default zone: %s\n", conf.DefaultZoneName)
	fmt.Fprintf(w, "Default zone URI: %s\n", conf.DefaultZoneURI)
}
