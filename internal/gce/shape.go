package gce

import (
	"fmt"
	"reflect"
	"regexp"
)

// typeNamePattern matches machine and disk type names, which end up as a
// single resource path segment.
var typeNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// HasMachineType is implemented by anything that names a machine type.
type HasMachineType interface {
	// MachineType returns the bare machine type name, e.g. e2-medium.
	MachineType() string
}

// HasBootDisk is implemented by anything that describes a boot disk.
type HasBootDisk interface {
	// BootDiskType returns the bare disk type name, e.g. pd-balanced.
	BootDiskType() string
	// BootDiskSizeGB returns the boot disk size in GB.
	BootDiskSizeGB() int64
}

// Shape is the full capability set the builder needs from a machine.
type Shape interface {
	HasMachineType
	HasBootDisk
}

// MachineShape is the plain value implementation of Shape.
type MachineShape struct {
	Machine    string `json:"machineType" yaml:"machineType"`
	DiskType   string `json:"bootDiskType" yaml:"bootDiskType"`
	DiskSizeGB int64  `json:"bootDiskSizeGb" yaml:"bootDiskSizeGb"`
}

// MachineType implements HasMachineType.
func (s MachineShape) MachineType() string { return s.Machine }

// BootDiskType implements HasBootDisk.
func (s MachineShape) BootDiskType() string { return s.DiskType }

// BootDiskSizeGB implements HasBootDisk.
func (s MachineShape) BootDiskSizeGB() int64 { return s.DiskSizeGB }

// checkShape verifies that m carries every capability of Shape with usable
// values.
func checkShape(m HasMachineType) (Shape, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no machine shape given", ErrTypeMismatch)
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, fmt.Errorf("%w: nil %T given as machine shape", ErrTypeMismatch, m)
	}
	shape, ok := m.(Shape)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no boot disk description", ErrTypeMismatch, m)
	}
	if shape.MachineType() == "" {
		return nil, fmt.Errorf("%w: machine type is empty", ErrTypeMismatch)
	}
	if !typeNamePattern.MatchString(shape.MachineType()) {
		return nil, fmt.Errorf("%w: machine type %q must match %s", ErrTypeMismatch, shape.MachineType(), typeNamePattern)
	}
	if shape.BootDiskType() == "" {
		return nil, fmt.Errorf("%w: boot disk type is empty", ErrTypeMismatch)
	}
	if !typeNamePattern.MatchString(shape.BootDiskType()) {
		return nil, fmt.Errorf("%w: boot disk type %q must match %s", ErrTypeMismatch, shape.BootDiskType(), typeNamePattern)
	}
	if shape.BootDiskSizeGB() <= 0 {
		return nil, fmt.Errorf("%w: boot disk size must be positive, got %d", ErrTypeMismatch, shape.BootDiskSizeGB())
	}
	return shape, nil
}
