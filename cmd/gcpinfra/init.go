package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
	"github.com/anewmanvs/gcpinfra/internal/loader"
)

// initOptions are the values written into a new ContainerVM file.
type initOptions struct {
	file          string
	zone          string
	machineType   string
	diskType      string
	diskSizeGB    int64
	image         string
	restartPolicy string
	force         bool
}

func initCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Write a new ContainerVM file",
		Long: `Write a ContainerVM resource file with the given name and container image.

The file is written to <name>.yaml unless -f is given. An existing file is
left alone unless --force is set. Leave --zone empty to use the provider's
default zone at create time.`,
		Example: `  gcpinfra init worker-1 --image gcr.io/proj/app:latest
  gcpinfra init batch --image gcr.io/proj/job:1 --restart-policy OnFailure -f batch.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := newResource(args[0], opts)
			path := opts.file
			if path == "" {
				path = vm.Name + ".yaml"
			}

			if !opts.force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check %s: %w", path, err)
				}
			}

			if err := loader.SaveToFile(vm, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Output file (default <name>.yaml)")
	cmd.Flags().StringVar(&opts.zone, "zone", "", "Zone, e.g. southamerica-east1-b")
	cmd.Flags().StringVar(&opts.machineType, "machine-type", "e2-medium", "Machine type")
	cmd.Flags().StringVar(&opts.diskType, "disk-type", "pd-balanced", "Boot disk type")
	cmd.Flags().Int64Var(&opts.diskSizeGB, "disk-size", 10, "Boot disk size in GB")
	cmd.Flags().StringVar(&opts.image, "image", "", "Container image")
	cmd.Flags().StringVar(&opts.restartPolicy, "restart-policy", v1alpha1.DefaultRestartPolicy, "Always, OnFailure or Never")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newResource(name string, opts *initOptions) *v1alpha1.ContainerVM {
	vm := v1alpha1.NewContainerVM(name)
	vm.Spec.Zone = opts.zone
	vm.Spec.MachineType = opts.machineType
	vm.Spec.BootDisk = v1alpha1.BootDiskSpec{Type: opts.diskType, SizeGB: opts.diskSizeGB}
	vm.Spec.Container = v1alpha1.ContainerSpec{Image: opts.image, RestartPolicy: opts.restartPolicy}
	vm.Normalize()
	return vm
}
