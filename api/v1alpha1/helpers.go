package v1alpha1

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// GroupName is the API group for gcpinfra resources.
	GroupName = "gcpinfra.anewmanvs.dev"

	// Version is the API version.
	Version = "v1alpha1"

	// ContainerVMKind is the kind string for ContainerVM resources.
	ContainerVMKind = "ContainerVM"

	// DefaultRestartPolicy applies when spec.container.restartPolicy is omitted.
	DefaultRestartPolicy = "Always"
)

// APIVersion returns the full apiVersion string, group/version.
func APIVersion() string {
	return GroupName + "/" + Version
}

// NewContainerVM returns a ContainerVM with type and object metadata set and
// the Spec defaults applied.
func NewContainerVM(name string) *ContainerVM {
	return &ContainerVM{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion(),
			Kind:       ContainerVMKind,
		},
		ObjectMeta: ObjectMeta{
			Name:              name,
			UID:               uuid.NewString(),
			CreationTimestamp: Now(),
			Generation:        1,
		},
		Spec: ContainerVMSpec{
			Container: ContainerSpec{RestartPolicy: DefaultRestartPolicy},
		},
		Status: ContainerVMStatus{
			Phase: PhasePending,
		},
	}
}

// SetDefaultAPIVersion fills in apiVersion and kind when they are missing.
func SetDefaultAPIVersion(vm *ContainerVM) {
	if vm.APIVersion == "" {
		vm.APIVersion = APIVersion()
	}
	if vm.Kind == "" {
		vm.Kind = ContainerVMKind
	}
}

// GetRestartPolicy returns the restart policy with default fallback.
func (vm *ContainerVM) GetRestartPolicy() string {
	if vm.Spec.Container.RestartPolicy == "" {
		return DefaultRestartPolicy
	}
	return vm.Spec.Container.RestartPolicy
}

// SetPhase sets the phase in status.
func (vm *ContainerVM) SetPhase(phase Phase) {
	vm.Status.Phase = phase
}

// GetPhase returns the current phase.
func (vm *ContainerVM) GetPhase() Phase {
	return vm.Status.Phase
}

// UpdateObservedGeneration sets status.observedGeneration to metadata.generation.
func (vm *ContainerVM) UpdateObservedGeneration() {
	vm.Status.ObservedGeneration = vm.Generation
}

// EnsureIdentity assigns a UID, creation timestamp and generation to a
// resource loaded from a file that does not have them yet.
func (vm *ContainerVM) EnsureIdentity() {
	if vm.UID == "" {
		vm.UID = uuid.NewString()
	}
	if vm.CreationTimestamp.IsZero() {
		vm.CreationTimestamp = Now()
	}
	if vm.Generation == 0 {
		vm.Generation = 1
	}
}

// Normalize trims user input and lowercases the name. Other fields keep
// their case; the provider matches them exactly.
func (vm *ContainerVM) Normalize() {
	vm.Name = strings.ToLower(strings.TrimSpace(vm.Name))
	vm.Spec.Zone = strings.TrimSpace(vm.Spec.Zone)
	vm.Spec.MachineType = strings.TrimSpace(vm.Spec.MachineType)
	vm.Spec.BootDisk.Type = strings.TrimSpace(vm.Spec.BootDisk.Type)
	vm.Spec.Container.Image = strings.TrimSpace(vm.Spec.Container.Image)
}
