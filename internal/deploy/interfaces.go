package deploy

import (
	"context"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
)

// computeClient defines the compute calls needed to create an instance.
//
// In production, this is satisfied by *gcpclient.ComputeService.
// In tests, this is satisfied by mock implementations.
type computeClient interface {
	// InstancesInsert submits an instance descriptor
	InstancesInsert(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error)

	// WaitForOperation polls a zone operation until it is done
	WaitForOperation(ctx context.Context, project string, op *compute.Operation) error
}

// configProvider resolves the shared provider configuration.
//
// In production, this is the process-wide configuration behind
// gcpconf.GetOrCreate. *gcpconf.Provider also satisfies it.
type configProvider interface {
	GetOrCreate(ctx context.Context, opts gcpconf.Options) (*gcpconf.Config, error)
}
