package output

import (
	"encoding/json"
	"fmt"
	"strings"

	compute "google.golang.org/api/compute/v1"
	"gopkg.in/yaml.v3"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// YAMLFormatter formats objects as YAML.
type YAMLFormatter struct{}

// FormatVM formats a ContainerVM as YAML.
func (f *YAMLFormatter) FormatVM(vm *v1alpha1.ContainerVM) (string, error) {
	v1alpha1.SetDefaultAPIVersion(vm)

	data, err := yaml.Marshal(vm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ContainerVM to YAML: %w", err)
	}
	return string(data), nil
}

// FormatDescriptor formats a descriptor as YAML. It goes through the wire
// JSON so keys, forced empty fields and string encoded integers match the
// JSON form.
func (f *YAMLFormatter) FormatDescriptor(inst *compute.Instance) (string, error) {
	data, err := json.Marshal(inst)
	if err != nil {
		return "", fmt.Errorf("failed to marshal descriptor to JSON: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse descriptor JSON: %w", err)
	}
	blockStyle(&doc)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal descriptor to YAML: %w", err)
	}
	return string(out), nil
}

// blockStyle rewrites the flow styled tree yaml.v3 produces for JSON input
// into block style. Strings keep their quotes when the plain form would read
// back as another type, and multi-line strings become literal blocks.
func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		if len(n.Content) > 0 {
			n.Style = 0
		}
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" && n.Style&yaml.DoubleQuotedStyle != 0 {
			switch {
			case strings.Contains(n.Value, "\n"):
				n.Style = yaml.LiteralStyle
			case plainIsString(n.Value):
				n.Style = 0
			}
		}
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// plainIsString reports whether v, written unquoted, reads back as the same string.
func plainIsString(v string) bool {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(v), &n); err != nil || len(n.Content) != 1 {
		return false
	}
	c := n.Content[0]
	return c.Kind == yaml.ScalarNode && c.ShortTag() == "!!str" && c.Value == v
}
