package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/internal/deploy"
	"github.com/anewmanvs/gcpinfra/internal/output"
)

func createCmd(flags *globalFlags) *cobra.Command {
	var (
		wait         bool
		saveStatus   bool
		outputFormat string
		noHeaders    bool
	)

	cmd := &cobra.Command{
		Use:   "create <containervm.yaml>",
		Short: "Create an instance from a ContainerVM file",
		Long: `Create a Compute Engine instance from a ContainerVM resource file.

The instance boots Container-Optimized OS and starts the container named in
spec.container. The zone defaults to the first zone of the default region the
project can see.

With --wait the command blocks until the insert operation is done. With
--save-status the resource, status included, is written back to the file, and
later runs refuse to submit it again.`,
		Example: `  gcpinfra create worker.yaml
  gcpinfra create worker.yaml --wait --save-status -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.ValidateFormat(outputFormat); err != nil {
				return err
			}
			formatter, err := output.NewFormatter(output.Options{
				Format:    output.Format(outputFormat),
				NoHeaders: noHeaders,
			})
			if err != nil {
				return err
			}

			vm, createErr := deploy.Create(cmd.Context(), args[0], deploy.Options{
				Provider:   flags.providerOptions(),
				Wait:       wait,
				SaveStatus: saveStatus,
			})
			if vm != nil {
				result, err := formatter.FormatVM(vm)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), result)
			}
			if createErr != nil {
				return fmt.Errorf("failed to create instance: %w", createErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the insert operation to finish")
	cmd.Flags().BoolVar(&saveStatus, "save-status", false, "Write the resulting status back to the file")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatTable), "Output format: table, yaml, json")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit table headers")
	return cmd
}
