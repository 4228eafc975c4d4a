// Package v1alpha1 contains the resource types for gcpinfra.anewmanvs.dev/v1alpha1.
//
// The types follow Kubernetes API conventions (type/object metadata, a spec
// for desired state and a status for what gcpinfra observed) with field names
// and tags matching k8s.io/apimachinery, without depending on it.
package v1alpha1

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// TypeMeta identifies the schema of a serialized resource.
type TypeMeta struct {
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
}

// ObjectMeta is the metadata every resource carries.
type ObjectMeta struct {
	// Name is required and becomes the instance name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Labels organize resource files; they are not sent to the provider.
	// +optional
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// +optional
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	// CreationTimestamp is set when the resource is first created by gcpinfra.
	// +optional
	CreationTimestamp Time `json:"creationTimestamp,omitempty" yaml:"creationTimestamp,omitempty"`

	// UID is set when the resource is first created by gcpinfra.
	// +optional
	UID string `json:"uid,omitempty" yaml:"uid,omitempty"`

	// Generation increments whenever Spec is changed by gcpinfra.
	// +optional
	Generation int64 `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// Time wraps time.Time with RFC3339 JSON and YAML encodings. The zero value
// encodes as null.
type Time struct {
	time.Time `json:"-" yaml:"-"`
}

// Now returns the current time truncated to seconds, the precision it is
// serialized with.
func Now() Time {
	return Time{Time: time.Now().UTC().Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, node.Value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Condition is one observation about a resource, keyed by Type.
type Condition struct {
	Type   string          `json:"type" yaml:"type"`
	Status ConditionStatus `json:"status" yaml:"status"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty" yaml:"observedGeneration,omitempty"`

	// LastTransitionTime changes only when Status changes.
	// +optional
	LastTransitionTime Time `json:"lastTransitionTime,omitempty" yaml:"lastTransitionTime,omitempty"`

	// Reason is a CamelCase identifier for the last transition.
	// +optional
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// +optional
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ConditionStatus is True, False or Unknown.
type ConditionStatus string

const (
	ConditionTrue    ConditionStatus = "True"
	ConditionFalse   ConditionStatus = "False"
	ConditionUnknown ConditionStatus = "Unknown"
)

// DeepCopy creates a deep copy of ObjectMeta.
func (in *ObjectMeta) DeepCopy() *ObjectMeta {
	if in == nil {
		return nil
	}
	out := new(ObjectMeta)
	*out = *in
	out.Labels = copyMap(in.Labels)
	out.Annotations = copyMap(in.Annotations)
	return out
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
