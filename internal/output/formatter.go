// Package output renders ContainerVM resources and instance descriptors as
// tables, YAML or JSON.
package output

import (
	"fmt"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a one row per object summary.
	FormatTable Format = "table"
	// FormatYAML is YAML with the same keys as the JSON form.
	FormatYAML Format = "yaml"
	// FormatJSON is the provider wire form for descriptors.
	FormatJSON Format = "json"
)

// Formatter formats gcpinfra objects for output.
type Formatter interface {
	// FormatVM formats a ContainerVM resource, status included.
	FormatVM(vm *v1alpha1.ContainerVM) (string, error)

	// FormatDescriptor formats an instance descriptor.
	FormatDescriptor(inst *compute.Instance) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a Formatter for opts.Format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
