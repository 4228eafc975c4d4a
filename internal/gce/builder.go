// Package gce builds Compute Engine instance descriptors for machines that run
// a single container on Container-Optimized OS, and submits them.
package gce

import (
	"context"
	"fmt"
	"regexp"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"

	"github.com/anewmanvs/gcpinfra/internal/containerdecl"
	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
	"github.com/anewmanvs/gcpinfra/internal/naming"
)

const (
	// COSImage is the Container-Optimized OS release every instance boots.
	COSImage = "cos-stable-80-12739-91-0"

	// SourceImage is the boot disk image path for COSImage.
	SourceImage = "projects/cos-cloud/global/images/" + COSImage

	// ContainerVMLabel marks instances created from a container declaration.
	ContainerVMLabel = "container-vm"

	// LoggingMetadataKey enables the logging agent on the instance.
	LoggingMetadataKey = "google-logging-enabled"
)

// RestartPolicy is the container restart policy.
type RestartPolicy string

const (
	RestartAlways    RestartPolicy = "Always"
	RestartOnFailure RestartPolicy = "OnFailure"
	RestartNever     RestartPolicy = "Never"
)

// Valid reports whether p is one of the supported policies.
func (p RestartPolicy) Valid() bool {
	switch p {
	case RestartAlways, RestartOnFailure, RestartNever:
		return true
	}
	return false
}

// instanceNamePattern is the Compute Engine resource name format.
var instanceNamePattern = regexp.MustCompile(`^[a-z]([-a-z0-9]{0,61}[a-z0-9])?$`)

// zonePattern is the Compute Engine zone name format, e.g. southamerica-east1-a.
var zonePattern = regexp.MustCompile(`^[a-z]+-[a-z]+[0-9]+-[a-z]$`)

// Params are the user supplied machine parameters.
type Params struct {
	// Name is the instance name. It also names the container and boot disk device.
	Name string
	// Zone is the bare zone name. Defaults to the Config's default zone.
	Zone string
	// Shape must also implement HasBootDisk.
	Shape HasMachineType
	// ContainerImage is the image reference the container runs.
	ContainerImage string
	// RestartPolicy is one of Always, OnFailure, Never.
	RestartPolicy RestartPolicy
}

// InstanceInserter submits an instance descriptor.
//
// In production, this is satisfied by *gcpclient.ComputeService.
type InstanceInserter interface {
	InstancesInsert(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error)
}

// Builder turns validated Params and a provider Config into instance
// descriptors. It holds no mutable state; Build may be called any number of
// times and from multiple goroutines.
type Builder struct {
	conf          *gcpconf.Config
	name          string
	zone          string
	region        string
	shape         Shape
	image         string
	restartPolicy RestartPolicy
}

// NewBuilder validates p against conf and returns a Builder.
func NewBuilder(conf *gcpconf.Config, p Params) (*Builder, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: provider configuration is required", ErrInvalidArgument)
	}
	if !p.RestartPolicy.Valid() {
		return nil, fmt.Errorf("%w: restart policy %q must be one of %s, %s, %s",
			ErrInvalidArgument, p.RestartPolicy, RestartOnFailure, RestartNever, RestartAlways)
	}
	shape, err := checkShape(p.Shape)
	if err != nil {
		return nil, err
	}
	if !instanceNamePattern.MatchString(p.Name) {
		return nil, fmt.Errorf("%w: instance name %q must match %s", ErrInvalidArgument, p.Name, instanceNamePattern)
	}

	decl := containerdecl.Declaration{Name: p.Name, Image: p.ContainerImage, RestartPolicy: string(p.RestartPolicy)}
	if err := decl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	zone := p.Zone
	if zone == "" {
		zone = conf.DefaultZoneName
	}
	if !zonePattern.MatchString(zone) {
		return nil, fmt.Errorf("%w: zone %q must match %s", ErrInvalidArgument, zone, zonePattern)
	}
	region := naming.RegionFromZone(zone)

	return &Builder{
		conf:          conf,
		name:          p.Name,
		zone:          zone,
		region:        region,
		shape:         shape,
		image:         p.ContainerImage,
		restartPolicy: p.RestartPolicy,
	}, nil
}

// Name returns the instance name.
func (b *Builder) Name() string { return b.name }

// Zone returns the zone the instance is placed in.
func (b *Builder) Zone() string { return b.zone }

// Region returns the region derived from Zone.
func (b *Builder) Region() string { return b.region }

// ContainerDeclaration returns the declaration text embedded in the descriptor.
func (b *Builder) ContainerDeclaration() string {
	return containerdecl.Render(containerdecl.Declaration{
		Name:          b.name,
		Image:         b.image,
		RestartPolicy: string(b.restartPolicy),
	})
}

// Build returns a new instance descriptor. It performs no I/O and equal
// builders produce descriptors with identical JSON encodings.
func (b *Builder) Build() *compute.Instance {
	project := b.conf.ProjectID
	declaration := b.ContainerDeclaration()
	loggingEnabled := "true"

	scopes := make([]string, len(b.conf.Scopes))
	copy(scopes, b.conf.Scopes)

	return &compute.Instance{
		Kind:        "compute#instance",
		Name:        b.name,
		Zone:        naming.ZonePath(project, b.zone),
		MachineType: naming.MachineTypePath(project, b.zone, b.shape.MachineType()),
		DisplayDevice: &compute.DisplayDevice{
			EnableDisplay:   false,
			ForceSendFields: []string{"EnableDisplay"},
		},
		Metadata: &compute.Metadata{
			Kind: "compute#metadata",
			Items: []*compute.MetadataItems{
				{Key: containerdecl.MetadataKey, Value: &declaration},
				{Key: LoggingMetadataKey, Value: &loggingEnabled},
			},
		},
		Tags: &compute.Tags{
			Items:           []string{},
			ForceSendFields: []string{"Items"},
		},
		Disks: []*compute.AttachedDisk{
			{
				Kind:       "compute#attachedDisk",
				Type:       "PERSISTENT",
				Boot:       true,
				Mode:       "READ_WRITE",
				AutoDelete: true,
				DeviceName: b.name,
				InitializeParams: &compute.AttachedDiskInitializeParams{
					SourceImage: SourceImage,
					DiskType:    naming.DiskTypePath(project, b.zone, b.shape.BootDiskType()),
					DiskSizeGb:  b.shape.BootDiskSizeGB(),
				},
				DiskEncryptionKey: &compute.CustomerEncryptionKey{},
			},
		},
		CanIpForward: false,
		NetworkInterfaces: []*compute.NetworkInterface{
			{
				Kind:       "compute#networkInterface",
				Subnetwork: naming.SubnetworkPath(project, b.region, naming.DefaultSubnetwork),
				AccessConfigs: []*compute.AccessConfig{
					{
						Kind:        "compute#accessConfig",
						Name:        "External NAT",
						Type:        "ONE_TO_ONE_NAT",
						NetworkTier: "PREMIUM",
					},
				},
				AliasIpRanges:   []*compute.AliasIpRange{},
				ForceSendFields: []string{"AliasIpRanges"},
			},
		},
		Description: "",
		Labels: map[string]string{
			ContainerVMLabel: COSImage,
		},
		Scheduling: &compute.Scheduling{
			Preemptible:       false,
			OnHostMaintenance: "MIGRATE",
			AutomaticRestart:  googleapi.Bool(true),
			NodeAffinities:    []*compute.SchedulingNodeAffinity{},
			ForceSendFields:   []string{"Preemptible", "NodeAffinities"},
		},
		DeletionProtection: false,
		ReservationAffinity: &compute.ReservationAffinity{
			ConsumeReservationType: "ANY_RESERVATION",
		},
		ServiceAccounts: []*compute.ServiceAccount{
			{
				Email:  b.conf.ServiceAccountEmail,
				Scopes: scopes,
			},
		},
		ShieldedInstanceConfig: &compute.ShieldedInstanceConfig{
			EnableSecureBoot:          false,
			EnableVtpm:                true,
			EnableIntegrityMonitoring: true,
			ForceSendFields:           []string{"EnableSecureBoot"},
		},
		ForceSendFields: []string{"CanIpForward", "DeletionProtection", "Description"},
	}
}

// Submit inserts descriptor into the builder's project and zone. Provider
// errors are returned as is.
func (b *Builder) Submit(ctx context.Context, client InstanceInserter, descriptor *compute.Instance) (*compute.Operation, error) {
	return client.InstancesInsert(ctx, b.conf.ProjectID, b.zone, descriptor)
}
