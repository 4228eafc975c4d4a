package v1alpha1

// ContainerVM is a Compute Engine instance running a single container on
// Container-Optimized OS.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.status.zone`
type ContainerVM struct {
	TypeMeta `json:",inline" yaml:",inline"`

	// +optional
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec ContainerVMSpec `json:"spec" yaml:"spec"`

	// Status is written back by gcpinfra create.
	// +optional
	Status ContainerVMStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// ContainerVMSpec is the desired instance.
type ContainerVMSpec struct {
	// Zone is the bare zone name, e.g. southamerica-east1-a. Defaults to the
	// provider configuration's default zone.
	// +optional
	Zone string `json:"zone,omitempty" yaml:"zone,omitempty"`

	// MachineType is the bare machine type name, e.g. e2-medium.
	MachineType string `json:"machineType" yaml:"machineType"`

	BootDisk BootDiskSpec `json:"bootDisk" yaml:"bootDisk"`

	Container ContainerSpec `json:"container" yaml:"container"`
}

// BootDiskSpec is the boot disk created from the Container-Optimized OS image.
type BootDiskSpec struct {
	// Type is the bare disk type name, e.g. pd-balanced.
	Type string `json:"type" yaml:"type"`

	// +kubebuilder:validation:Minimum=1
	SizeGB int64 `json:"sizeGB" yaml:"sizeGB"`
}

// ContainerSpec is the container the instance runs.
type ContainerSpec struct {
	Image string `json:"image" yaml:"image"`

	// RestartPolicy is Always (default), OnFailure or Never.
	// +optional
	// +kubebuilder:validation:Enum=Always;OnFailure;Never
	RestartPolicy string `json:"restartPolicy,omitempty" yaml:"restartPolicy,omitempty"`
}

// ContainerVMStatus is what gcpinfra observed while creating the instance.
type ContainerVMStatus struct {
	// +optional
	Phase Phase `json:"phase,omitempty" yaml:"phase,omitempty"`

	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// Zone is the zone the instance was submitted to.
	// +optional
	Zone string `json:"zone,omitempty" yaml:"zone,omitempty"`

	// OperationName is the zone operation returned by the insert call.
	// +optional
	OperationName string `json:"operationName,omitempty" yaml:"operationName,omitempty"`

	// InstanceURL is the self link of the created instance.
	// +optional
	InstanceURL string `json:"instanceURL,omitempty" yaml:"instanceURL,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty" yaml:"observedGeneration,omitempty"`
}

// Phase is the creation phase of a ContainerVM.
type Phase string

const (
	// PhasePending means the resource has not been submitted.
	PhasePending Phase = "Pending"

	// PhaseSubmitting means the insert call was made and its operation is running.
	PhaseSubmitting Phase = "Submitting"

	// PhaseProvisioned means the insert operation finished successfully.
	PhaseProvisioned Phase = "Provisioned"

	// PhaseFailed means the insert was rejected or its operation failed.
	PhaseFailed Phase = "Failed"
)

// Condition types for ContainerVM resources.
const (
	// ConditionReady is True once the instance exists.
	ConditionReady = "Ready"

	// ConditionConfigResolved is True once credentials, project and zone are known.
	ConditionConfigResolved = "ConfigResolved"

	// ConditionSubmitted is True once the provider accepted the insert call.
	ConditionSubmitted = "Submitted"
)

// DeepCopy creates a deep copy of ContainerVM.
func (in *ContainerVM) DeepCopy() *ContainerVM {
	if in == nil {
		return nil
	}
	out := new(ContainerVM)
	*out = *in
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	if in.Status.Conditions != nil {
		out.Status.Conditions = make([]Condition, len(in.Status.Conditions))
		copy(out.Status.Conditions, in.Status.Conditions)
	}
	return out
}
