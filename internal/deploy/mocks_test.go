package deploy

import (
	"context"
	"sync"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
)

// mockComputeClient is a mock implementation of computeClient.
type mockComputeClient struct {
	mu sync.Mutex

	// Configurable behavior
	instancesInsertFunc  func(project, zone string, instance *compute.Instance) (*compute.Operation, error)
	waitForOperationFunc func(project string, op *compute.Operation) error

	// Call tracking
	instancesInsertCalls  []insertCall
	waitForOperationCalls []*compute.Operation
}

type insertCall struct {
	project  string
	zone     string
	instance *compute.Instance
}

// newMockComputeClient returns a client whose insert succeeds with a RUNNING
// operation that finishes when waited on.
func newMockComputeClient() *mockComputeClient {
	m := &mockComputeClient{}

	m.instancesInsertFunc = func(project, zone string, instance *compute.Instance) (*compute.Operation, error) {
		return &compute.Operation{
			Name:       "operation-1",
			Status:     "RUNNING",
			Zone:       "https://www.googleapis.com/compute/v1/projects/" + project + "/zones/" + zone,
			TargetLink: "https://www.googleapis.com/compute/v1/projects/" + project + "/zones/" + zone + "/instances/" + instance.Name,
		}, nil
	}

	m.waitForOperationFunc = func(project string, op *compute.Operation) error {
		return nil
	}

	return m
}

func (m *mockComputeClient) InstancesInsert(_ context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error) {
	m.mu.Lock()
	m.instancesInsertCalls = append(m.instancesInsertCalls, insertCall{project: project, zone: zone, instance: instance})
	m.mu.Unlock()
	return m.instancesInsertFunc(project, zone, instance)
}

func (m *mockComputeClient) WaitForOperation(_ context.Context, project string, op *compute.Operation) error {
	m.mu.Lock()
	m.waitForOperationCalls = append(m.waitForOperationCalls, op)
	m.mu.Unlock()
	return m.waitForOperationFunc(project, op)
}

// mockConfigProvider returns a fixed configuration or error.
type mockConfigProvider struct {
	conf *gcpconf.Config
	err  error

	calls []gcpconf.Options
}

func newMockConfigProvider() *mockConfigProvider {
	return &mockConfigProvider{
		conf: &gcpconf.Config{
			ProjectID:           "proj",
			ServiceAccountEmail: "deployer@proj.iam.gserviceaccount.com",
			Scopes:              []string{gcpconf.CloudPlatformScope},
			DefaultRegion:       gcpconf.DefaultRegion,
			DefaultZoneName:     "southamerica-east1-b",
		},
	}
}

func (m *mockConfigProvider) GetOrCreate(_ context.Context, opts gcpconf.Options) (*gcpconf.Config, error) {
	m.calls = append(m.calls, opts)
	if m.err != nil {
		return nil, m.err
	}
	return m.conf, nil
}

// clientFactory returns a clientFor function handing out client.
func clientFactory(client computeClient) func(context.Context, *gcpconf.Config) (computeClient, error) {
	return func(context.Context, *gcpconf.Config) (computeClient, error) {
		return client, nil
	}
}
