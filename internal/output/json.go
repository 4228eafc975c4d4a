package output

import (
	"encoding/json"
	"fmt"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// JSONFormatter formats objects as indented JSON.
type JSONFormatter struct{}

// FormatVM formats a ContainerVM as JSON.
func (f *JSONFormatter) FormatVM(vm *v1alpha1.ContainerVM) (string, error) {
	v1alpha1.SetDefaultAPIVersion(vm)

	data, err := json.MarshalIndent(vm, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal ContainerVM to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatDescriptor formats a descriptor exactly as it is sent to the
// instances.insert call.
func (f *JSONFormatter) FormatDescriptor(inst *compute.Instance) (string, error) {
	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal descriptor to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
