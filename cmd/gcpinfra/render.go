package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/internal/deploy"
	"github.com/anewmanvs/gcpinfra/internal/output"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "render <containervm.yaml>",
		Short: "Print the instance descriptor without submitting it",
		Long: `Print the compute#instance descriptor that create would submit.

Provider configuration is still resolved, so the project, service account and
default zone in the output are the ones create would use.

Output formats:
  -o json   Request body as sent to the provider (default)
  -o yaml   The same document as YAML
  -o table  One line summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.ValidateFormat(outputFormat); err != nil {
				return err
			}
			formatter, err := output.NewFormatter(output.Options{Format: output.Format(outputFormat)})
			if err != nil {
				return err
			}

			inst, err := deploy.Render(cmd.Context(), args[0], deploy.Options{Provider: flags.providerOptions()})
			if err != nil {
				return fmt.Errorf("failed to render descriptor: %w", err)
			}

			result, err := formatter.FormatDescriptor(inst)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatJSON), "Output format: json, yaml, table")
	return cmd
}
