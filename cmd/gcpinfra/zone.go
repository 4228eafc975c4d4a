package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
)

func zoneNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone-name <zone-uri>",
		Short: "Print the bare zone name of a zone URI",
		Example: `  gcpinfra zone-name https://www.googleapis.com/compute/v1/projects/p/zones/southamerica-east1-b
  southamerica-east1-b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := gcpconf.ZoneNameFromURI(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
