package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
	"github.com/anewmanvs/gcpinfra/internal/gce"
	"github.com/anewmanvs/gcpinfra/internal/gcpclient"
	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
	"github.com/anewmanvs/gcpinfra/internal/loader"
	"github.com/anewmanvs/gcpinfra/internal/status"
)

// ErrAlreadySubmitted is returned when a resource's status shows it was
// already submitted.
var ErrAlreadySubmitted = errors.New("resource already submitted")

// Options control Create and Render.
type Options struct {
	// Provider is passed to the provider configuration on first use.
	Provider gcpconf.Options

	// Wait blocks until the insert operation is done.
	Wait bool

	// SaveStatus writes the updated resource, status included, back to its file.
	SaveStatus bool
}

// Create creates the instance described by the ContainerVM file at path and
// returns the resource with its status updated.
//
// The returned resource is non-nil whenever the file could be loaded, even
// when creation fails, so callers can report the recorded status.
func Create(ctx context.Context, path string, opts Options) (*v1alpha1.ContainerVM, error) {
	return createFromFile(ctx, path, opts, gcpconfProvider{}, newComputeClient)
}

// gcpconfProvider adapts the process-wide configuration to configProvider.
type gcpconfProvider struct{}

func (gcpconfProvider) GetOrCreate(ctx context.Context, opts gcpconf.Options) (*gcpconf.Config, error) {
	return gcpconf.GetOrCreate(ctx, opts)
}

func newComputeClient(ctx context.Context, conf *gcpconf.Config) (computeClient, error) {
	svc, err := conf.ComputeService(ctx)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createFromFile(
	ctx context.Context,
	path string,
	opts Options,
	provider configProvider,
	clientFor func(context.Context, *gcpconf.Config) (computeClient, error),
) (*v1alpha1.ContainerVM, error) {
	vm, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load resource: %w", err)
	}

	createErr := func() error {
		if err := checkNotSubmitted(vm); err != nil {
			return err
		}
		status.ResetForRetry(vm)

		conf, err := provider.GetOrCreate(ctx, opts.Provider)
		if err != nil {
			status.MarkConfigFailed(vm, err)
			return fmt.Errorf("failed to resolve provider configuration: %w", err)
		}

		client, err := clientFor(ctx, conf)
		if err != nil {
			status.MarkConfigFailed(vm, err)
			return fmt.Errorf("failed to create compute client: %w", err)
		}

		return createWithDeps(ctx, vm, conf, client, opts.Wait)
	}()

	if opts.SaveStatus {
		if err := loader.SaveToFile(vm, path); err != nil {
			slog.Warn("Failed to save resource status.", "path", path, "error", err)
		}
	}
	return vm, createErr
}

// checkNotSubmitted refuses resources whose status shows a previous submission.
func checkNotSubmitted(vm *v1alpha1.ContainerVM) error {
	phase := vm.GetPhase()
	if status.IsInFlight(phase) || phase == v1alpha1.PhaseProvisioned {
		return fmt.Errorf("%w: %s is %s (operation %s)", ErrAlreadySubmitted, vm.Name, phase, vm.Status.OperationName)
	}
	return nil
}

// createWithDeps builds and submits vm with injected dependencies.
func createWithDeps(ctx context.Context, vm *v1alpha1.ContainerVM, conf *gcpconf.Config, client computeClient, wait bool) error {
	vm.EnsureIdentity()
	log := slog.With("name", vm.Name)

	b, err := BuilderFor(vm, conf)
	if err != nil {
		status.TransitionToFailed(vm, "InvalidSpec", err.Error())
		return err
	}
	status.MarkConfigResolved(vm, conf.ProjectID, b.Zone())

	log.Info("Submitting instance.", "project", conf.ProjectID, "zone", b.Zone(), "machineType", vm.Spec.MachineType)
	op, err := b.Submit(ctx, client, b.Build())
	if err != nil {
		if gcpclient.IsAlreadyExists(err) {
			log.Warn("Instance already exists.", "zone", b.Zone())
		}
		status.MarkSubmitFailed(vm, errors.New(gcpclient.ErrorMessage(err)))
		return fmt.Errorf("failed to submit instance %s: %w", vm.Name, err)
	}

	if err := status.TransitionToSubmitting(vm, op.Name); err != nil {
		return err
	}
	log.Info("Instance submitted.", "operation", op.Name)

	if !wait {
		return nil
	}

	if err := client.WaitForOperation(ctx, conf.ProjectID, op); err != nil {
		status.MarkOperationFailed(vm, err)
		return fmt.Errorf("instance %s was not created: %w", vm.Name, err)
	}
	if err := status.TransitionToProvisioned(vm, op.TargetLink); err != nil {
		return err
	}
	log.Info("Instance created.", "instance", op.TargetLink)
	return nil
}

// BuilderFor maps a ContainerVM spec onto builder parameters.
func BuilderFor(vm *v1alpha1.ContainerVM, conf *gcpconf.Config) (*gce.Builder, error) {
	return gce.NewBuilder(conf, gce.Params{
		Name: vm.Name,
		Zone: vm.Spec.Zone,
		Shape: gce.MachineShape{
			Machine:    vm.Spec.MachineType,
			DiskType:   vm.Spec.BootDisk.Type,
			DiskSizeGB: vm.Spec.BootDisk.SizeGB,
		},
		ContainerImage: vm.Spec.Container.Image,
		RestartPolicy:  gce.RestartPolicy(vm.GetRestartPolicy()),
	})
}

// Render returns the descriptor Create would submit for the file at path.
func Render(ctx context.Context, path string, opts Options) (*compute.Instance, error) {
	return renderFromFile(ctx, path, opts, gcpconfProvider{})
}

func renderFromFile(ctx context.Context, path string, opts Options, provider configProvider) (*compute.Instance, error) {
	vm, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load resource: %w", err)
	}
	conf, err := provider.GetOrCreate(ctx, opts.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider configuration: %w", err)
	}
	b, err := BuilderFor(vm, conf)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}
