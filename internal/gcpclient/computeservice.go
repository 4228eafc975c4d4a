// Package gcpclient wraps the Compute Engine REST client with the handful of
// calls gcpinfra makes: the regions lookup used to pick a default zone, the
// instance insert that submits a descriptor, and zone operation polling.
package gcpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

const (
	operationTimeout  = 10 * time.Minute
	operationWaitPoll = 5 * time.Second

	// OperationDone is the terminal status of a compute operation.
	OperationDone = "DONE"
)

// ComputeService is a pass through wrapper for google.golang.org/api/compute/v1.
// It exists so callers can depend on a narrow interface and tests can point
// the client at an httptest server.
type ComputeService struct {
	service *compute.Service

	// pollInterval is how long WaitForOperation sleeps between polls.
	pollInterval time.Duration
}

// NewComputeService creates a ComputeService that sends requests through
// client. The client is expected to add authorization, e.g. one returned by
// oauth2.NewClient.
func NewComputeService(ctx context.Context, client *http.Client) (*ComputeService, error) {
	service, err := compute.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}
	return &ComputeService{
		service:      service,
		pollInterval: operationWaitPoll,
	}, nil
}

// NewComputeServiceForURL creates a ComputeService whose requests go to
// baseURL instead of the public endpoint, keeping the API path.
func NewComputeServiceForURL(ctx context.Context, client *http.Client, baseURL string) (*ComputeService, error) {
	computeService, err := NewComputeService(ctx, client)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(computeService.service.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compute base path: %w", err)
	}
	computeService.service.BasePath = strings.TrimSuffix(baseURL, "/") + u.Path
	return computeService, nil
}

// RegionsGet is a pass through wrapper for compute.Service.Regions.Get(...).
func (c *ComputeService) RegionsGet(ctx context.Context, project, region string) (*compute.Region, error) {
	return c.service.Regions.Get(project, region).Context(ctx).Do()
}

// InstancesInsert is a pass through wrapper for compute.Service.Instances.Insert(...).
// Each call carries a fresh request id so a transport level retry of the same
// call cannot create the instance twice.
func (c *ComputeService) InstancesInsert(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error) {
	return c.service.Instances.Insert(project, zone, instance).
		RequestId(uuid.NewString()).
		Context(ctx).
		Do()
}

// ZoneOperationsGet is a pass through wrapper for compute.Service.ZoneOperations.Get(...).
func (c *ComputeService) ZoneOperationsGet(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
	return c.service.ZoneOperations.Get(project, zone, operation).Context(ctx).Do()
}

// WaitForOperation polls a zonal operation until it is DONE, fails, or the
// operation timeout elapses.
func (c *ComputeService) WaitForOperation(ctx context.Context, project string, op *compute.Operation) error {
	log := slog.With("component", "compute", "operation", op.Name, "type", op.OperationType)
	log.Info("Waiting for operation.")
	defer log.Debug("Finished waiting for operation.")

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	var err error
	for {
		if err = checkOp(op, err); err != nil || op.Status == OperationDone {
			return err
		}
		log.Debug("Operation in progress.", "status", op.Status, "progress", op.Progress, "message", op.StatusMessage)
		select {
		case <-ctx.Done():
			return fmt.Errorf("gce operation %v %q timed out after %v: %w", op.OperationType, op.Name, time.Since(start), ctx.Err())
		case <-time.After(c.pollInterval):
		}
		name := op.Name
		op, err = c.getOp(ctx, project, op)
		if IsNotFound(err) {
			return fmt.Errorf("gce operation %q no longer exists: %w", name, err)
		}
	}
}

// getOp returns an updated operation.
func (c *ComputeService) getOp(ctx context.Context, project string, op *compute.Operation) (*compute.Operation, error) {
	if op.Zone == "" {
		return nil, fmt.Errorf("operation %q has no zone", op.Name)
	}
	return c.ZoneOperationsGet(ctx, project, path.Base(op.Zone), op.Name)
}

func checkOp(op *compute.Operation, err error) error {
	if err != nil || op.Error == nil || len(op.Error.Errors) == 0 {
		return err
	}

	var msgs []string
	for _, v := range op.Error.Errors {
		msgs = append(msgs, v.Message)
	}
	return errors.New(strings.Join(msgs, "\n"))
}
