// Package loader reads and writes ContainerVM resource files.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// restartPolicies are the values spec.container.restartPolicy accepts.
var restartPolicies = map[string]bool{
	"Always":    true,
	"OnFailure": true,
	"Never":     true,
}

// LoadFromFile loads a ContainerVM from a YAML file.
func LoadFromFile(path string) (*v1alpha1.ContainerVM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a ContainerVM from YAML bytes. The document must be a
// gcpinfra.anewmanvs.dev/v1alpha1 ContainerVM. Defaults are applied and the
// spec is validated before it is returned.
func LoadFromYAML(data []byte) (*v1alpha1.ContainerVM, error) {
	var vm v1alpha1.ContainerVM
	if err := yaml.Unmarshal(data, &vm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if vm.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if vm.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}
	if vm.APIVersion != v1alpha1.APIVersion() {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", vm.APIVersion, v1alpha1.APIVersion())
	}
	if vm.Kind != v1alpha1.ContainerVMKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", vm.Kind, v1alpha1.ContainerVMKind)
	}

	applyDefaults(&vm)

	if err := validateSpec(&vm); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &vm, nil
}

// SaveToFile writes vm, status included, to a YAML file. vm is not modified.
func SaveToFile(vm *v1alpha1.ContainerVM, path string) error {
	out := vm.DeepCopy()
	v1alpha1.SetDefaultAPIVersion(out)

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal ContainerVM to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

func applyDefaults(vm *v1alpha1.ContainerVM) {
	vm.Normalize()

	if vm.Spec.Container.RestartPolicy == "" {
		vm.Spec.Container.RestartPolicy = v1alpha1.DefaultRestartPolicy
	}
	if vm.Status.Phase == "" {
		vm.Status.Phase = v1alpha1.PhasePending
	}
}

// validateSpec checks required fields. Values the provider owns, such as
// whether a machine type exists in the zone, are left for the insert call.
func validateSpec(vm *v1alpha1.ContainerVM) error {
	if vm.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if vm.Spec.MachineType == "" {
		return fmt.Errorf("spec.machineType is required")
	}
	if vm.Spec.BootDisk.Type == "" {
		return fmt.Errorf("spec.bootDisk.type is required")
	}
	if vm.Spec.BootDisk.SizeGB <= 0 {
		return fmt.Errorf("spec.bootDisk.sizeGB must be greater than 0")
	}
	if vm.Spec.Container.Image == "" {
		return fmt.Errorf("spec.container.image is required")
	}
	if !restartPolicies[vm.Spec.Container.RestartPolicy] {
		return fmt.Errorf("spec.container.restartPolicy %q must be one of Always, OnFailure, Never", vm.Spec.Container.RestartPolicy)
	}
	return nil
}
